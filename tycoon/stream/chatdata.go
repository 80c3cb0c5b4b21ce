package stream

// Synthetic chatter vocabulary. Usernames are composed from a prefix and a
// suffix so the pool stays large without a giant literal.

var usernamePrefixes = []string{
	"xX_", "The", "Its", "Real", "Lil", "Big", "Tiny", "Dark", "Neon",
	"Pixel", "Turbo", "Mega", "Ultra", "Sneaky", "Cozy", "Spicy", "Salty",
	"Chill", "Hyper", "Lazy",
}

var usernameCores = []string{
	"Gamer", "Wolf", "Dragon", "Ninja", "Wizard", "Panda", "Fox", "Ghost",
	"Knight", "Samurai", "Potato", "Waffle", "Noodle", "Biscuit", "Raccoon",
	"Falcon", "Viper", "Shadow", "Storm", "Cactus",
}

var usernameSuffixes = []string{
	"", "_Xx", "TV", "Live", "HD", "99", "42", "2000", "Gaming", "Plays",
	"_TTV", "OG", "Prime", "X",
}

var genericMessages = []string{
	"this stream is great",
	"lol",
	"LMAO",
	"first time here, loving it",
	"hello everyone",
	"hi chat",
	"what did I miss?",
	"no way",
	"W",
	"L take chat",
	"this is so good",
	"can we get some hype",
	"anyone else lagging?",
	"brb getting snacks",
	"greetings from germany",
	"why is chat so fast",
	"true",
	"real",
	"based",
	"clip it",
	"someone clip that",
	"I was here",
	"lurking as always",
	"good vibes today",
	"turn up the volume pls",
	"this slaps",
	"sheeesh",
	"how long have you been live?",
	"love this content",
	"underrated streamer fr",
}

// chatEmotes maps emote tokens to their rendered glyph. Tokens appearing
// as whole words in a message are replaced; emoteTokens keeps a stable
// order so picks stay deterministic under a seeded rand.
var chatEmotes = map[string]string{
	"Pog":          "😮",
	"PogChamp":     "😲",
	"Kappa":        "😏",
	"LUL":          "😂",
	"BibleThump":   "😭",
	"Kreygasm":     "😩",
	"4Head":        "😄",
	"CoolCat":      "😎",
	"NotLikeThis":  "🤦",
	"FeelsGoodMan": "😌",
	"FeelsBadMan":  "😢",
	"monkaS":       "😰",
	"EZ":           "😎",
	"GG":           "🎮",
	"Heart":        "❤️",
	"Fire":         "🔥",
	"PogU":         "🤯",
	"5Head":        "🧠",
	"OMEGALUL":     "🤣",
}

var emoteTokens = []string{
	"Pog", "PogChamp", "Kappa", "LUL", "BibleThump", "Kreygasm", "4Head",
	"CoolCat", "NotLikeThis", "FeelsGoodMan", "FeelsBadMan", "monkaS", "EZ",
	"GG", "Heart", "Fire", "PogU", "5Head", "OMEGALUL",
}

// Contextual pools keyed on live session state rather than stream type.

var lowViewerMessages = []string{
	"Where is everyone?",
	"Quiet stream today",
	"Cozy vibes",
	"Small stream, big heart",
	"Quality over quantity!",
	"Intimate setting today",
}

var highViewerMessages = []string{
	"Chat is popping off!",
	"So many people!",
	"This is crazy!",
	"Front page?!",
	"We're blowing up!",
	"Viewer raid incoming!",
}

var longStreamMessages = []string{
	"Marathon stream!",
	"How long have we been live?",
	"Dedication!",
	"Still going strong!",
	"Stamina goals!",
	"No sleep squad!",
}

var lowEnergyMessages = []string{
	"Streamer looks tired",
	"Maybe time for a break?",
	"Energy check",
	"Stay hydrated!",
	"Get some rest!",
	"Self-care is important!",
}

var typeMessages = map[string][]string{
	"gaming": {
		"nice play!",
		"that was clean",
		"you should have gone left",
		"skill issue",
		"carried",
		"clutch or kick",
		"what are your settings?",
		"is this ranked?",
		"gg",
		"that boss looks brutal",
	},
	"justchatting": {
		"great story lol",
		"hot take but I agree",
		"what do you think about the drama?",
		"tell the one about the airport again",
		"chat is wild today",
		"thoughts on pineapple pizza?",
		"this is like a podcast",
		"W opinion",
	},
	"music": {
		"this melody is fire",
		"what DAW is that?",
		"drop the track name",
		"vibing so hard",
		"the bassline tho",
		"play it again!",
		"encore! encore!",
		"is this an original?",
	},
	"artstream": {
		"the colors are gorgeous",
		"what brush is that?",
		"it's coming together",
		"draw my OC pls",
		"the shading is insane",
		"commissions open?",
		"time-lapse this later pls",
		"art goals",
	},
	"coding": {
		"have you tried turning it off and on again",
		"just use a hashmap",
		"missing semicolon line 42",
		"tabs or spaces?",
		"what language is this?",
		"rewrite it in rust",
		"the bug is in the for loop",
		"ship it",
		"works on my machine",
	},
}

var donationReactions = []string{
	"thank you for the dono!!",
	"dono hype!",
	"POGGERS donation",
	"so generous",
	"rich chat today",
	"W donor",
	"money printer goes brrr",
}

var eventReactions = map[string][]string{
	"raid": {
		"RAID HYPE",
		"welcome raiders!",
		"the raid is here!!",
		"chat just doubled lol",
	},
	"technical_difficulties": {
		"F",
		"stream froze for anyone else?",
		"rip the stream",
		"audio is gone",
	},
	"big_donation": {
		"HUGE dono",
		"did you see that amount??",
		"absolute legend",
	},
	"trolls": {
		"ignore the trolls",
		"mods do your thing",
		"who invited these guys",
	},
	"viral_moment": {
		"WE'RE VIRAL",
		"this is all over twitter",
		"front page!!",
	},
	"gaming_win": {
		"VICTORY",
		"GGs",
		"that win was insane",
	},
	"coding_breakthrough": {
		"IT COMPILES",
		"the build is green!",
		"galaxy brain",
	},
}

var subscriberMessages = []string{
	"just subbed!",
	"had to sub after that",
	"sub hype!",
	"welcome to the fam",
	"another one joins",
	"worth every penny",
}

var chatColors = []string{
	"#FF4500", "#2E8B57", "#1E90FF", "#9ACD32", "#FF69B4", "#8A2BE2",
	"#00CED1", "#DAA520", "#DC143C", "#5F9EA0", "#FF7F50", "#7FFF00",
}
