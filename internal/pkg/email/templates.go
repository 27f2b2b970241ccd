package email

// BaseTemplate is the base layout for all emails
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f3ef; color: #2b2b2b; }
        .container { max-width: 600px; margin: 0 auto; padding: 32px 16px; }
        .card { background: #ffffff; border-radius: 10px; padding: 28px; border: 1px solid #e4ded3; }
        h2 { font-size: 22px; margin: 0 0 16px; }
        p { font-size: 15px; line-height: 1.6; margin: 0 0 12px; }
        .info-box { background: #faf7f2; border-radius: 8px; padding: 14px; margin: 14px 0; }
        .footer { text-align: center; margin-top: 24px; color: #8a8a8a; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            {{.Content}}
        </div>
        <div class="footer">
            <p>Vous recevez cet email suite à votre réservation.</p>
        </div>
    </div>
</body>
</html>
`

// ReservationConfirmedTemplate is sent once payment has completed.
const ReservationConfirmedTemplate = `
<h2>Réservation confirmée</h2>
<p>Bonjour {{.CustomerName}},</p>
<p>Votre réservation <strong>{{.ReservationID}}</strong> est confirmée.</p>
<div class="info-box">
    <p><strong>Chambre :</strong> {{.RoomNumber}} ({{.RoomType}})</p>
    <p><strong>Arrivée :</strong> {{.ArrivalDate}}</p>
    <p><strong>Départ :</strong> {{.DepartureDate}}</p>
    <p><strong>Nuits :</strong> {{.Nights}}</p>
    <p><strong>Personnes :</strong> {{.PartySize}}</p>
    <p><strong>Total :</strong> {{.TotalAmount}}</p>
</div>
<p>Paiement ({{.PaymentMethod}}) : transaction {{.TransactionID}}</p>
`
