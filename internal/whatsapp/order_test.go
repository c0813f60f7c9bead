package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func decode(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("invalid link: %v", err)
	}
	return u.Query().Get("text")
}

func TestOrderLinkBasic(t *testing.T) {
	link := OrderLink("+242066811931", OrderRequest{
		ProductName:  "Boubou brodé",
		ProductPrice: 15000,
		CustomerName: "Awa",
		Quantity:     1,
	})

	if !strings.HasPrefix(link, "https://wa.me/+242066811931?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	text := decode(t, link)
	for _, want := range []string{
		"Bonjour, je souhaite commander ce produit :",
		"Produit: Boubou brodé",
		"Prix: 15000 CFA",
		"Quantity 1",
		"Nom: Awa",
		"Merci !",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("message missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Prix total") {
		t.Fatal("single quantity must not show a total line")
	}
}

func TestOrderLinkQuantityAndOptions(t *testing.T) {
	link := OrderLink("+242066811931", OrderRequest{
		ProductName:    "Chemise",
		ProductPrice:   8000,
		CustomerName:   "Dian",
		Quantity:       3,
		SelectedSizes:  []string{"M", "L"},
		SelectedColors: []string{"indigo"},
		ImageURL:       "https://img.example.com/chemise.jpg",
	})
	text := decode(t, link)

	for _, want := range []string{
		"Prix total: 24000 CFA",
		"Tailles choisies: M, L",
		"Couleurs choisies: indigo",
		"Image du produit: https://img.example.com/chemise.jpg",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("message missing %q:\n%s", want, text)
		}
	}
}

func TestOrderLinkCustomSizing(t *testing.T) {
	withPants := OrderRequest{
		ProductName: "Ensemble", ProductPrice: 20000, CustomerName: "Ken", Quantity: 1,
		CustomSizing: &CustomSizing{ShirtSize: "98cm", PantsSize: "80cm"},
	}
	text := decode(t, OrderLink("+242066811931", withPants))
	for _, want := range []string{
		"Confection sur mesure demandée:",
		"Taille haut: 98cm",
		"Taille pantalon: 80cm",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("message missing %q", want)
		}
	}

	withPants.CustomSizing.PantsSize = ""
	text = decode(t, OrderLink("+242066811931", withPants))
	if strings.Contains(text, "Taille pantalon") {
		t.Fatal("pants line must be omitted when no pants size given")
	}
}
