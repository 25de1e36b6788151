package catalog

import "testing"

func TestTranslateKnownKey(t *testing.T) {
	Init("en")

	msg := T("1.01.01.1012")
	if msg == "" || msg == "1.01.01.1012" {
		t.Fatalf("expected a translation, got %q", msg)
	}
}

func TestTranslateUnknownKeyFallsBackToKey(t *testing.T) {
	Init("en")

	if got := T("9.99.99.9999"); got != "9.99.99.9999" {
		t.Fatalf("expected the key itself, got %q", got)
	}
}

func TestSetLangSwitchesLocale(t *testing.T) {
	SetLang("ja")
	ja := T("1.01.01.1012")

	SetLang("en")
	en := T("1.01.01.1012")

	if ja == en {
		t.Fatal("expected different wording per locale")
	}
}

func TestLazyInit(t *testing.T) {
	mu.Lock()
	localizer = nil
	mu.Unlock()

	if got := T("1.01.01.1012"); got == "" {
		t.Fatal("expected lazy initialization to resolve the key")
	}
}
