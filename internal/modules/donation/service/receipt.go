package service

import (
	"bytes"
	"html/template"
	"time"

	"anoa.com/charityhub/internal/entity"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Donation Receipt</title>
    <style>
      body { font-family: Arial, sans-serif; max-width: 600px; margin: 40px auto; padding: 20px; }
      h1 { color: #16a34a; }
      .receipt-id { font-family: monospace; background: #f3f4f6; padding: 10px; }
    </style>
  </head>
  <body>
    <h1>Donation Receipt</h1>
    <p><strong>Receipt ID:</strong> <span class="receipt-id">{{.ReceiptID}}</span></p>
    <p><strong>Donor:</strong> {{.DonorName}}</p>
    <p><strong>Campaign:</strong> {{.CampaignName}}</p>
    <p><strong>Amount:</strong> ${{.Amount}}</p>
    <p><strong>Date:</strong> {{.Date}}</p>
    <p>Thank you for your generous donation!</p>
  </body>
</html>
`))

type receiptData struct {
	ReceiptID    string
	DonorName    string
	CampaignName string
	Amount       string
	Date         string
}

func renderReceipt(donation *entity.Donation) ([]byte, error) {
	data := receiptData{
		ReceiptID: donation.ReceiptID.String(),
		Amount:    donation.Amount.StringFixed(2),
		Date:      donation.CreatedAt.UTC().Format(time.DateOnly),
	}
	if donation.Donor != nil {
		data.DonorName = donation.Donor.Name
	}
	if donation.Campaign != nil {
		data.CampaignName = donation.Campaign.Name
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
