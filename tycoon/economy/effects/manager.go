package effects

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
)

// Manager runs shop transactions against a player. Purchase failures are
// expected gameplay outcomes: they notify the player and return false, they
// never mutate state.
type Manager struct {
	player   *economy.Player
	notifier economy.Notifier
	rng      *rand.Rand
}

func NewManager(player *economy.Player, notifier economy.Notifier, rng *rand.Rand) *Manager {
	if notifier == nil {
		notifier = economy.NopNotifier{}
	}
	return &Manager{player: player, notifier: notifier, rng: rng}
}

// Purchase buys one copy of itemID: requirement check, scaled cost
// deduction, instant effects, synergy detection, then a full modifier
// refold. Unknown ids are logged no-ops.
func (m *Manager) Purchase(itemID string) bool {
	item := ItemByID(itemID)
	if item == nil {
		logger.LogEconomy("Unknown shop item", "item_id", itemID)
		return false
	}

	owned := m.ownedCount(item.ID)
	if owned > 0 && !item.Repeatable {
		m.notifier.Notify("You already own "+item.Name+"!", interfaces.SeverityWarning)
		return false
	}

	if missing := m.missingRequirements(item); len(missing) > 0 {
		m.notifier.Notify("Requirements not met! Need: "+strings.Join(missing, ", "), interfaces.SeverityWarning)
		return false
	}

	cost := ScaledCost(item, owned)
	if !m.player.SpendMoney(cost) {
		m.notifier.Notify(fmt.Sprintf("Not enough money! Need $%d", cost), interfaces.SeverityWarning)
		return false
	}

	m.applyInstant(item)
	m.player.Inventory = append(m.player.Inventory, economy.Purchase{ItemID: item.ID, Price: cost})
	m.activateNewSynergies()
	m.player.Mods = Fold(m.player.Inventory, m.player.ActiveSynergies)

	logger.LogEconomy("Item purchased", "item_id", item.ID, "cost", cost)
	m.notifier.StatsChanged()
	return true
}

// Refold recomputes the player's modifiers from scratch. Called after
// restoring a save so stored modifiers can never drift from the inventory.
func (m *Manager) Refold() {
	m.player.ActiveSynergies = synergyNames(ReadySynergies(m.player.Inventory))
	m.player.Mods = Fold(m.player.Inventory, m.player.ActiveSynergies)
}

func (m *Manager) ownedCount(itemID string) int {
	n := 0
	for _, pur := range m.player.Inventory {
		if pur.ItemID == itemID {
			n++
		}
	}
	return n
}

func (m *Manager) missingRequirements(item *Item) []string {
	var missing []string
	for _, req := range item.Requires {
		if m.ownedCount(req) == 0 {
			name := req
			if reqItem := ItemByID(req); reqItem != nil {
				name = reqItem.Name
			}
			missing = append(missing, name)
		}
	}
	return missing
}

func (m *Manager) applyInstant(item *Item) {
	e := item.Effect

	if e.Reputation != 0 {
		m.player.ChangeReputation(e.Reputation)
		m.notifier.Log(fmt.Sprintf("Purchased %s. Reputation %+d.", item.Name, e.Reputation))
	}
	if e.Energy > 0 {
		gain := e.Energy
		if e.EnergyPercent > 0 {
			gain += m.player.MaxEnergy * e.EnergyPercent
		}
		m.player.RecoverEnergy(gain)
		m.notifier.Log(fmt.Sprintf("Purchased %s. Energy +%.0f.", item.Name, gain))
	}
	if e.MaxEnergyBonus > 0 {
		m.player.MaxEnergy += e.MaxEnergyBonus
		m.player.RecoverEnergy(e.MaxEnergyBonus)
		m.notifier.Log(fmt.Sprintf("Purchased %s. Max energy +%.0f.", item.Name, e.MaxEnergyBonus))
	}
	if e.Skill != "" {
		m.applySkill(item)
	}
	if e.InstantSubsMax > 0 {
		span := e.InstantSubsMax - e.InstantSubsMin + 1
		amount := e.InstantSubsMin + m.rng.Intn(span)
		// Bigger channels convert shoutouts better.
		amount = int(float64(amount) * (0.5 + float64(m.player.Reputation)/100))
		if amount < 1 {
			amount = 1
		}
		m.player.AddSubscribers(amount)
		m.notifier.Log(fmt.Sprintf("Purchased %s. Instant +%d subscribers!", item.Name, amount))
	}
}

func (m *Manager) applySkill(item *Item) {
	e := item.Effect
	amount := e.SkillAmount
	if e.SkillAmountMax > e.SkillAmount {
		amount = e.SkillAmount + m.rng.Float64()*(e.SkillAmountMax-e.SkillAmount)
	}

	switch e.Skill {
	case "all":
		for _, name := range []economy.SkillName{economy.SkillGaming, economy.SkillTalking, economy.SkillTechnical, economy.SkillCreativity} {
			m.player.ImproveSkill(name, amount)
		}
		m.notifier.Log(fmt.Sprintf("Purchased %s. All skills +%.1f!", item.Name, amount))
	case "random":
		skills := []economy.SkillName{economy.SkillGaming, economy.SkillTalking, economy.SkillTechnical, economy.SkillCreativity}
		picked := skills[m.rng.Intn(len(skills))]
		m.player.ImproveSkill(picked, amount)
		m.notifier.Log(fmt.Sprintf("Purchased %s. %s skill +%.1f!", item.Name, picked, amount))
	default:
		if m.player.ImproveSkill(economy.SkillName(e.Skill), amount) {
			m.notifier.Log(fmt.Sprintf("Purchased %s. %s skill +%.1f.", item.Name, e.Skill, amount))
		}
	}
}

func (m *Manager) activateNewSynergies() {
	active := make(map[string]bool, len(m.player.ActiveSynergies))
	for _, name := range m.player.ActiveSynergies {
		active[name] = true
	}

	for _, syn := range ReadySynergies(m.player.Inventory) {
		if active[syn.Name] {
			continue
		}
		m.player.ActiveSynergies = append(m.player.ActiveSynergies, syn.Name)
		m.notifier.Notify("SYNERGY UNLOCKED: "+syn.Name+"!", interfaces.SeveritySuccess)
		m.notifier.Log("Synergy unlocked: " + syn.Description)
	}
}

func synergyNames(syns []Synergy) []string {
	names := make([]string, 0, len(syns))
	for _, s := range syns {
		names = append(names, s.Name)
	}
	return names
}
