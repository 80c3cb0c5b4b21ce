// Package effects holds the static upgrade catalog and the machinery that
// turns owned purchases into player modifiers.
package effects

// Effect describes what one item (or synergy) does. Instant fields are
// applied once at purchase time; modifier fields are folded into the
// player's Modifiers struct on every refold.
type Effect struct {
	// Instant effects.
	Reputation     int
	Energy         float64
	EnergyPercent  float64 // extra energy as a fraction of max energy
	MaxEnergyBonus float64
	Skill          string // skill name, "all" or "random"
	SkillAmount    float64
	SkillAmountMax float64 // when > SkillAmount, roll uniformly in between
	InstantSubsMin int
	InstantSubsMax int

	// Persistent modifiers, folded by Fold.
	MoneyMultiplier            float64
	EnergyEfficiency           float64
	EnergyRecoveryBonus        float64
	StartingViewerMultiplier   float64
	ViewerRetentionBonus       float64
	SubscriberConversionBonus  float64
	DonationRateMultiplier     float64
	NegativeEventImmunity      bool
	RaidEventChance            float64
	PassiveIncomePerMinute     float64
	ChatMomentumBonus          float64
	CompletionBonusSubscribers float64
	CompletionBonusAll         float64
	CompletionThreshold        float64
}

// Scaling controls cost growth and effect falloff for repeatable items.
type Scaling struct {
	CostMultiplier    float64
	EffectDiminishing float64
}

// Item is one entry of the shop catalog.
type Item struct {
	ID          string
	Name        string
	Category    string
	Description string
	Cost        int64
	Repeatable  bool
	Requires    []string
	Scaling     *Scaling
	Effect      Effect
}

// Synergy unlocks once when every required item is owned and contributes its
// effect to the modifier fold from then on.
type Synergy struct {
	Name         string
	Description  string
	Requirements []string
	Effect       Effect
}

// ShopItems is the full purchasable catalog. Loaded once, never mutated.
var ShopItems = []Item{
	{
		ID:          "decent_mic",
		Name:        "Decent Microphone",
		Category:    "audio",
		Description: "Clearer audio for your viewers.",
		Cost:        80,
		Effect:      Effect{Reputation: 3},
	},
	{
		ID:          "pro_mic",
		Name:        "Pro Microphone",
		Category:    "audio",
		Description: "Studio-grade sound. Boosts your reputation.",
		Cost:        150,
		Requires:    []string{"decent_mic"},
		Effect:      Effect{Reputation: 5},
	},
	{
		ID:          "basic_webcam",
		Name:        "Basic Webcam",
		Category:    "video",
		Description: "A basic webcam to show your face.",
		Cost:        70,
		Effect:      Effect{Reputation: 2},
	},
	{
		ID:          "hd_webcam",
		Name:        "HD Webcam",
		Category:    "video",
		Description: "A high-definition webcam. Looks more professional.",
		Cost:        250,
		Requires:    []string{"basic_webcam"},
		Effect:      Effect{Reputation: 7},
	},
	{
		ID:          "green_screen_kit",
		Name:        "Green Screen Kit",
		Category:    "video",
		Description: "Makes your stream look a bit more polished.",
		Cost:        100,
		Effect:      Effect{Reputation: 3},
	},
	{
		ID:          "gaming_guide",
		Name:        "Gaming Strategy Guide",
		Category:    "skills",
		Description: "Slightly increases your gaming skill.",
		Cost:        75,
		Repeatable:  true,
		Effect:      Effect{Skill: "gaming", SkillAmount: 0.2},
	},
	{
		ID:          "online_course",
		Name:        "Creator Masterclass",
		Category:    "skills",
		Description: "Improves a random skill by a little or a lot.",
		Cost:        140,
		Repeatable:  true,
		Effect:      Effect{Skill: "random", SkillAmount: 0.1, SkillAmountMax: 0.4},
	},
	{
		ID:          "stream_deck",
		Name:        "Stream Deck",
		Category:    "tech",
		Description: "Professional streaming control panel. Boosts technical skill.",
		Cost:        200,
		Effect:      Effect{Skill: "technical", SkillAmount: 0.3},
	},
	{
		ID:          "energy_drinks",
		Name:        "Energy Drink Supply",
		Category:    "consumables",
		Description: "Instantly recovers some energy.",
		Cost:        50,
		Repeatable:  true,
		Scaling:     &Scaling{CostMultiplier: 1.15},
		Effect:      Effect{Energy: 25},
	},
	{
		ID:          "gaming_chair_basic",
		Name:        "Basic Gaming Chair",
		Category:    "furniture",
		Description: "A comfortable chair. Recovers a bit of energy.",
		Cost:        120,
		Effect:      Effect{Energy: 15},
	},
	{
		ID:          "quality_mattress",
		Name:        "Quality Mattress",
		Category:    "furniture",
		Description: "Better sleep, faster recovery between streams.",
		Cost:        260,
		Effect:      Effect{EnergyRecoveryBonus: 0.25},
	},
	{
		ID:          "ergonomic_setup",
		Name:        "Ergonomic Setup",
		Category:    "furniture",
		Description: "Streaming tires you out less.",
		Cost:        300,
		Repeatable:  true,
		Scaling:     &Scaling{CostMultiplier: 1.6, EffectDiminishing: 0.7},
		Effect:      Effect{EnergyEfficiency: 0.9},
	},
	{
		ID:          "rgb_lighting",
		Name:        "RGB Lighting Kit",
		Category:    "ambiance",
		Description: "Colorful lighting setup. Attracts more viewers.",
		Cost:        180,
		Effect:      Effect{Reputation: 4, StartingViewerMultiplier: 1.1},
	},
	{
		ID:          "starting_hype",
		Name:        "Go-Live Announcements",
		Category:    "growth",
		Description: "Automated go-live posts pull a bigger starting crowd.",
		Cost:        220,
		Effect:      Effect{StartingViewerMultiplier: 1.25},
	},
	{
		ID:          "loyalty_program",
		Name:        "Viewer Loyalty Program",
		Category:    "growth",
		Description: "Badges and perks keep viewers around longer.",
		Cost:        350,
		Effect:      Effect{ViewerRetentionBonus: 0.03},
	},
	{
		ID:          "sub_button_gold",
		Name:        "Golden Sub Button",
		Category:    "growth",
		Description: "An irresistible subscribe button.",
		Cost:        500,
		Effect:      Effect{SubscriberConversionBonus: 0.15},
	},
	{
		ID:          "donation_widget",
		Name:        "Donation Goal Widget",
		Category:    "growth",
		Description: "On-screen goals nudge viewers to donate.",
		Cost:        400,
		Effect:      Effect{DonationRateMultiplier: 1.25},
	},
	{
		ID:          "ad_contract",
		Name:        "Sponsorship Contract",
		Category:    "business",
		Description: "A sponsor pays a cut on everything you earn.",
		Cost:        600,
		Effect:      Effect{MoneyMultiplier: 1.2},
	},
	{
		ID:          "merch_store",
		Name:        "Merch Store",
		Category:    "business",
		Description: "Shirts sell themselves while you sleep.",
		Cost:        750,
		Effect:      Effect{PassiveIncomePerMinute: 2},
	},
	{
		ID:          "pr_manager",
		Name:        "PR Manager",
		Category:    "business",
		Description: "Handles trolls and tech drama before it hurts you.",
		Cost:        900,
		Effect:      Effect{NegativeEventImmunity: true},
	},
	{
		ID:          "network_collab",
		Name:        "Streamer Network Membership",
		Category:    "business",
		Description: "Partner streamers raid your channel more often.",
		Cost:        650,
		Effect:      Effect{RaidEventChance: 0.03},
	},
	{
		ID:          "chat_bot",
		Name:        "Chat Bot",
		Category:    "tech",
		Description: "Keeps chat hyped between your messages.",
		Cost:        280,
		Effect:      Effect{ChatMomentumBonus: 2},
	},
	{
		ID:          "editor_hire",
		Name:        "Video Editor",
		Category:    "business",
		Description: "Highlight reels amplify well-finished streams.",
		Cost:        800,
		Effect:      Effect{CompletionBonusAll: 1.25, CompletionThreshold: 0.8},
	},
	{
		ID:          "shoutout_deal",
		Name:        "Influencer Shoutout",
		Category:    "growth",
		Description: "A bigger channel mentions you. Instant subscribers!",
		Cost:        450,
		Repeatable:  true,
		Scaling:     &Scaling{CostMultiplier: 1.4},
		Effect:      Effect{InstantSubsMin: 5, InstantSubsMax: 20},
	},
}

// Synergies are checked after every purchase; each unlocks at most once.
var Synergies = []Synergy{
	{
		Name:         "Studio Setup",
		Description:  "Pro audio, HD video and a green screen make you look like a TV channel.",
		Requirements: []string{"pro_mic", "hd_webcam", "green_screen_kit"},
		Effect:       Effect{MoneyMultiplier: 1.1, StartingViewerMultiplier: 1.1},
	},
	{
		Name:         "Content Machine",
		Description:  "Stream deck plus chat bot keeps the show rolling nonstop.",
		Requirements: []string{"stream_deck", "chat_bot"},
		Effect:       Effect{ChatMomentumBonus: 1, ViewerRetentionBonus: 0.02},
	},
	{
		Name:         "Business Empire",
		Description:  "Sponsors, merch and an editor compound each other.",
		Requirements: []string{"ad_contract", "merch_store", "editor_hire"},
		Effect:       Effect{MoneyMultiplier: 1.15, PassiveIncomePerMinute: 3},
	},
}

// ItemByID returns the catalog entry for id, or nil when unknown.
func ItemByID(id string) *Item {
	for i := range ShopItems {
		if ShopItems[i].ID == id {
			return &ShopItems[i]
		}
	}
	return nil
}
