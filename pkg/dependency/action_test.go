package dependency

import "testing"

func TestOppositeIsInvolutive(t *testing.T) {
	t.Parallel()

	for _, action := range Actions() {
		if got := action.Opposite().Opposite(); got != action {
			t.Fatalf("Opposite(Opposite(%s)) = %s, want %s", action, got, action)
		}
	}
}

func TestOppositePairs(t *testing.T) {
	t.Parallel()

	pairs := map[Action]Action{
		ActionShow:     ActionHide,
		ActionHide:     ActionShow,
		ActionEnable:   ActionDisable,
		ActionDisable:  ActionEnable,
		ActionRequire:  ActionOptional,
		ActionOptional: ActionRequire,
	}
	for action, want := range pairs {
		if got := action.Opposite(); got != want {
			t.Fatalf("Opposite(%s) = %s, want %s", action, got, want)
		}
	}
}

func TestOppositeUnknownFallsBackToSelf(t *testing.T) {
	t.Parallel()

	bogus := Action("flicker")
	if got := bogus.Opposite(); got != bogus {
		t.Fatalf("Opposite(%s) = %s, want identity fallback", bogus, got)
	}
	if bogus.Valid() {
		t.Fatalf("Valid() accepted %q", bogus)
	}
}
