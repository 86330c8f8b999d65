package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"zayna_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendNewOrderEmail prévient l'admin qu'une commande vient d'arriver.
// Sans SMTP_HOST ou ADMIN_EMAIL configuré, on ne fait rien : l'email est
// un canal de notification secondaire, jamais bloquant pour la commande.
func SendNewOrderEmail(order models.Order) error {
	host := os.Getenv("SMTP_HOST")
	to := os.Getenv("ADMIN_EMAIL")
	if host == "" || to == "" {
		return nil
	}

	subject := fmt.Sprintf("🛍️ Nouvelle commande #%d - %s %s", order.ID, order.FirstName, order.LastName)
	html := generateNewOrderHTML(order)

	msg := mail.NewMsg()
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@zayna.ma"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de la notification de commande à", to)
	return client.DialAndSend(msg)
}

func generateNewOrderHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%.2f DH</td>
				<td style="padding: 10px; border: 1px solid #ddd;">%.2f DH</td>
			</tr>`, item.Name, item.Quantity, float64(item.Price), float64(item.Price)*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Nouvelle commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">🛍️ Nouvelle commande #%d</h2>

		<h3>Client</h3>
		<p>
			%s %s<br>
			📞 %s<br>
			📍 %s, %s
		</p>

		<h3>Articles</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.2f DH</td>
				</tr>
			</tfoot>
		</table>

		<p style="color: #555;">Paiement à la livraison. Pensez à confirmer par téléphone avant expédition.</p>

		<p style="margin-top: 30px; color: #555;">
			<strong>Zayna Cosmétiques</strong>
		</p>
	</div>
</body>
</html>`, order.ID, order.FirstName, order.LastName, order.Phone, order.Address, order.City,
		itemsHTML, float64(order.Total))
}
