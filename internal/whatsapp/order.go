// Package whatsapp builds the wa.me deep links used by the ordering flow.
// There is no WhatsApp API involved: the storefront hands the customer a
// prefilled message and the conversation happens in their own client.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// CustomSizing carries the made-to-measure request of an order.
type CustomSizing struct {
	ShirtSize string `json:"shirtSize" validate:"required"`
	PantsSize string `json:"pantsSize"`
}

// OrderRequest describes one product order to turn into a WhatsApp message.
type OrderRequest struct {
	ProductName    string        `json:"productName" validate:"required"`
	ProductPrice   int64         `json:"productPrice" validate:"min=0"`
	CustomerName   string        `json:"customerName" validate:"required"`
	Quantity       int           `json:"quantity" validate:"min=1"`
	SelectedSizes  []string      `json:"selectedSizes"`
	SelectedColors []string      `json:"selectedColors"`
	CustomSizing   *CustomSizing `json:"customSizing"`
	ImageURL       string        `json:"imageUrl"`
}

// OrderLink renders the French order message and wraps it into a wa.me URL
// for the given destination phone (international format, leading +).
func OrderLink(phone string, req OrderRequest) string {
	lines := []string{
		"Bonjour, je souhaite commander ce produit :",
		"",
		fmt.Sprintf("Produit: %s", req.ProductName),
		fmt.Sprintf("Prix: %d CFA", req.ProductPrice),
		fmt.Sprintf("Quantity %d", req.Quantity),
	}

	if req.Quantity > 1 {
		lines = append(lines, fmt.Sprintf("Prix total: %d CFA", req.ProductPrice*int64(req.Quantity)))
	}
	if len(req.SelectedSizes) > 0 {
		lines = append(lines, fmt.Sprintf("Tailles choisies: %s", strings.Join(req.SelectedSizes, ", ")))
	}
	if len(req.SelectedColors) > 0 {
		lines = append(lines, fmt.Sprintf("Couleurs choisies: %s", strings.Join(req.SelectedColors, ", ")))
	}
	if req.CustomSizing != nil {
		lines = append(lines, "Confection sur mesure demandée:")
		lines = append(lines, fmt.Sprintf("Taille haut: %s", req.CustomSizing.ShirtSize))
		if req.CustomSizing.PantsSize != "" {
			lines = append(lines, fmt.Sprintf("Taille pantalon: %s", req.CustomSizing.PantsSize))
		}
	}

	lines = append(lines, "", fmt.Sprintf("Nom: %s", req.CustomerName))
	if req.ImageURL != "" {
		lines = append(lines, fmt.Sprintf("Image du produit: %s", req.ImageURL))
	}
	lines = append(lines, "", "Merci !")

	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(strings.Join(lines, "\n")))
}
