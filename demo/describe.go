package demo

// describe.go supplements the replication engine with the static label
// tables `original_source/csgopp/cli/summary.h` uses to render a
// human-readable summary of already-decoded state (spec.md §5
// supplement). These are plain lookup tables over well-known
// enumerations the game itself fixes; they decode nothing and
// simulate no game logic.

// DescribeGamePhase renders CCSGameRulesProxy's m_gamePhase field.
func DescribeGamePhase(phase int) string {
	switch phase {
	case 0:
		return "Init"
	case 1:
		return "Pregame"
	case 2:
		return "Start game phase"
	case 3:
		return "Team side switch"
	case 4:
		return "Game half ended"
	case 5:
		return "Game ended"
	case 6:
		return "Stale mate"
	case 7:
		return "Game over"
	default:
		return "Unknown"
	}
}

// DescribeTeam renders a player entity's m_iTeamNum field.
func DescribeTeam(team int) string {
	switch team {
	case 1:
		return "Spectators"
	case 2:
		return "Terrorists"
	case 3:
		return "Counter-terrorists"
	default:
		return "Unknown"
	}
}

// weaponNames maps the integer item definition index CS:GO's weapon
// purchase fields carry to the console/econ item name.
var weaponNames = map[int]string{
	1: "weapon_deagle", 2: "weapon_elite", 3: "weapon_fiveseven", 4: "weapon_glock",
	7: "weapon_ak47", 8: "weapon_aug", 9: "weapon_awp", 10: "weapon_famas",
	11: "weapon_g3sg1", 13: "weapon_galilar", 14: "weapon_m249", 16: "weapon_m4a1",
	17: "weapon_mac10", 19: "weapon_p90", 23: "weapon_mp5sd", 24: "weapon_ump45",
	25: "weapon_xm1014", 26: "weapon_bizon", 27: "weapon_mag7", 28: "weapon_negev",
	29: "weapon_sawedoff", 30: "weapon_tec9", 31: "weapon_taser", 32: "weapon_hkp2000",
	33: "weapon_mp7", 34: "weapon_mp9", 35: "weapon_nova", 36: "weapon_p250",
	38: "weapon_scar20", 39: "weapon_sg556", 40: "weapon_ssg08", 42: "weapon_knife",
	43: "weapon_flashbang", 44: "weapon_hegrenade", 45: "weapon_smokegrenade",
	46: "weapon_molotov", 47: "weapon_decoy", 48: "weapon_incgrenade", 49: "weapon_c4",
	50: "item_kevlar", 51: "item_assaultsuit", 55: "item_defuser",
	59: "weapon_knife_t", 60: "weapon_m4a1_silencer", 61: "weapon_usp_silencer",
	63: "weapon_cz75a", 64: "weapon_revolver",
}

// DescribeWeapon renders a weapon/econ item definition index.
func DescribeWeapon(item int) string {
	if s, ok := weaponNames[item]; ok {
		return s
	}
	return "unknown"
}
