package dependency

// Action is the closed set of directives a dependency rule can apply to a
// target field.
type Action string

const (
	ActionShow     Action = "show"
	ActionHide     Action = "hide"
	ActionEnable   Action = "enable"
	ActionDisable  Action = "disable"
	ActionRequire  Action = "require"
	ActionOptional Action = "optional"
)

// Opposite returns the canonical complementary action, used when a rule omits
// an explicit else action. The relation is involutive: every action maps to
// exactly one opposite and back.
func (a Action) Opposite() Action {
	switch a {
	case ActionShow:
		return ActionHide
	case ActionHide:
		return ActionShow
	case ActionEnable:
		return ActionDisable
	case ActionDisable:
		return ActionEnable
	case ActionRequire:
		return ActionOptional
	case ActionOptional:
		return ActionRequire
	default:
		// Unknown values fall back to themselves so Check never invents a
		// directive the caller did not declare.
		return a
	}
}

// Valid reports whether a is one of the six declared actions.
func (a Action) Valid() bool {
	switch a {
	case ActionShow, ActionHide, ActionEnable, ActionDisable, ActionRequire, ActionOptional:
		return true
	default:
		return false
	}
}

// Actions returns the declared actions in a stable order.
func Actions() []Action {
	return []Action{
		ActionShow,
		ActionHide,
		ActionEnable,
		ActionDisable,
		ActionRequire,
		ActionOptional,
	}
}
