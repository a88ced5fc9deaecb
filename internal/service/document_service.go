package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/segyhp/rental-engine/internal/domain"
	"github.com/segyhp/rental-engine/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type RentalReader interface {
	GetByID(ctx context.Context, id int64) (*domain.RentalDetails, error)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type EquipmentReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
}

// DocumentService gathers the data of a printable rental document
type DocumentService struct {
	rentals    RentalReader
	clients    ClientReader
	equipments EquipmentReader
	settings   SettingsReader
	now        Clock
}

func NewDocumentService(rentals RentalReader, clients ClientReader, equipments EquipmentReader, settings SettingsReader, now Clock) *DocumentService {
	return &DocumentService{
		rentals:    rentals,
		clients:    clients,
		equipments: equipments,
		settings:   settings,
		now:        now,
	}
}

const equipmentLookupLimit = 4

// Build loads the rental, its client, the equipment values and the company
// profile. Reading the rental goes through the engine, so an expired quote is
// canceled first.
func (s *DocumentService) Build(ctx context.Context, rentalID int64) (*domain.RentalDocument, error) {
	var (
		settings *domain.AppSettings
		details  *domain.RentalDetails
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settings, err = s.settings.Get(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		details, err = s.rentals.GetByID(gctx, rentalID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var client *domain.Client
	values := make([]decimal.Decimal, len(details.Items))

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(equipmentLookupLimit)
	g.Go(func() error {
		var err error
		client, err = s.clients.GetByID(gctx, details.ClientID)
		return err
	})
	for i, item := range details.Items {
		i, item := i, item
		g.Go(func() error {
			equipment, err := s.equipments.GetByID(gctx, item.EquipmentID)
			if err != nil {
				return err
			}
			values[i] = equipment.EquipmentValue
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.assemble(settings, details, client, values), nil
}

func (s *DocumentService) assemble(settings *domain.AppSettings, details *domain.RentalDetails, client *domain.Client, values []decimal.Decimal) *domain.RentalDocument {
	isQuote := details.Status == domain.RentalStatusQuote
	money := moneyFormatter(details.Currency)

	doc := &domain.RentalDocument{
		FileName: DocumentFileName(client.Name, details.Status, s.now()),
		Type:     domain.DocumentTypeRental,
		IsQuote:  isQuote,
		Company: domain.CompanyProfile{
			Name:     settings.CompanyName,
			Document: settings.CompanyDocument,
			LogoURI:  strings.TrimSpace(settings.CompanyLogoURI),
		},
		Client: domain.DocumentClient{
			Name:     client.Name,
			Document: utils.StringValue(client.Document),
			Phone:    utils.StringValue(client.Phone),
		},
		RentalID:     details.ID,
		Status:       details.Status,
		Period:       fmt.Sprintf("%s %s - %s %s", details.StartDate, details.StartTime, details.EndDate, details.EndTime),
		Delivery:     deliveryLine(details.DeliveryMode, details.DeliveryAddress),
		Currency:     details.Currency,
		Subtotal:     details.Subtotal,
		Freight:      details.FreightValue,
		Total:        details.Total,
		SubtotalText: money(details.Subtotal),
		FreightText:  money(details.FreightValue),
		TotalText:    money(details.Total),
		Notes:        utils.StringValue(details.Notes),
		Items:        make([]domain.DocumentItem, 0, len(details.Items)),
	}

	if isQuote {
		doc.Type = domain.DocumentTypeQuote
		doc.QuoteValidUntil = utils.StringValue(details.QuoteValidUntil)
	}

	for i, item := range details.Items {
		value := values[i]
		doc.Items = append(doc.Items, domain.DocumentItem{
			EquipmentName:      item.EquipmentName,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			EquipmentValue:     value,
			LineTotal:          item.LineTotal,
			UnitPriceText:      money(item.UnitPrice),
			EquipmentValueText: money(value),
			LineTotalText:      money(item.LineTotal),
		})
	}

	return doc
}

func deliveryLine(mode domain.DeliveryMode, address *string) string {
	if mode != domain.DeliveryModeDelivery {
		return "Retirada"
	}
	if address == nil {
		return "Entrega"
	}
	return "Entrega: " + *address
}

var (
	fileNameUnsafe     = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	fileNameUnderscore = regexp.MustCompile(`_{2,}`)
)

// DocumentFileName builds orcamento_<client>_<DD-MM-YYYY> for quotes and
// locacao_<client>_<DD-MM-YYYY> otherwise.
func DocumentFileName(clientName string, status domain.RentalStatus, today time.Time) string {
	prefix := "locacao"
	if status == domain.RentalStatusQuote {
		prefix = "orcamento"
	}
	date := strings.ReplaceAll(today.Format(utils.BrDateLayout), "/", "-")
	return prefix + "_" + sanitizeFileNamePart(clientName) + "_" + date
}

func sanitizeFileNamePart(value string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	plain, _, err := transform.String(stripAccents, value)
	if err != nil {
		plain = value
	}

	plain = fileNameUnsafe.ReplaceAllString(plain, "_")
	plain = fileNameUnderscore.ReplaceAllString(plain, "_")
	plain = strings.Trim(plain, "_")
	if plain == "" {
		return "cliente"
	}
	return plain
}

// moneyFormatter renders amounts the way each currency's home locale does:
// R$ 1.234,50, $1,234.50 and 1.234,50 €.
func moneyFormatter(currency domain.Currency) func(decimal.Decimal) string {
	tag := language.BrazilianPortuguese
	switch currency {
	case domain.CurrencyUSD:
		tag = language.AmericanEnglish
	case domain.CurrencyEUR:
		tag = language.German
	}
	printer := message.NewPrinter(tag)

	return func(value decimal.Decimal) string {
		amount := printer.Sprint(number.Decimal(value.Round(2).InexactFloat64(),
			number.MinFractionDigits(2), number.MaxFractionDigits(2)))

		switch currency {
		case domain.CurrencyUSD:
			return "$" + amount
		case domain.CurrencyEUR:
			return amount + " €"
		default:
			return "R$ " + amount
		}
	}
}
