package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/shopspring/decimal"
	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/usecase"
)

type saleLine struct {
	ProductID   string  `dynamodbav:"product_id"`
	ProductName string  `dynamodbav:"product_name"`
	Quantity    int     `dynamodbav:"quantity"`
	UnitAmount  float64 `dynamodbav:"unit_amount"`
	LineAmount  float64 `dynamodbav:"line_amount"`
}

type saleItem struct {
	VentaID    string     `dynamodbav:"venta_id"`
	Fecha      string     `dynamodbav:"fecha"`
	MetodoPago string     `dynamodbav:"metodo_pago"`
	Cliente    string     `dynamodbav:"cliente"`
	MontoTotal float64    `dynamodbav:"monto_total"`
	Productos  []saleLine `dynamodbav:"productos"`
	CreatedAt  time.Time  `dynamodbav:"created_at"`
}

func toSaleItem(sale *domain.SaleRecord) saleItem {
	lines := make([]saleLine, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		lines = append(lines, saleLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitAmount:  l.UnitAmount.InexactFloat64(),
			LineAmount:  l.LineAmount.InexactFloat64(),
		})
	}
	return saleItem{
		VentaID:    sale.SaleID,
		Fecha:      sale.Fecha,
		MetodoPago: string(sale.PaymentMethod),
		Cliente:    sale.CustomerRef,
		MontoTotal: sale.TotalAmount.InexactFloat64(),
		Productos:  lines,
		CreatedAt:  sale.CreatedAt,
	}
}

func (it saleItem) toDomain() domain.SaleRecord {
	lines := make([]domain.SaleLine, 0, len(it.Productos))
	for _, l := range it.Productos {
		lines = append(lines, domain.SaleLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitAmount:  decimal.NewFromFloat(l.UnitAmount),
			LineAmount:  decimal.NewFromFloat(l.LineAmount),
		})
	}
	return domain.SaleRecord{
		SaleID:        it.VentaID,
		Fecha:         it.Fecha,
		PaymentMethod: domain.PaymentMethod(it.MetodoPago),
		CustomerRef:   it.Cliente,
		TotalAmount:   decimal.NewFromFloat(it.MontoTotal),
		Lines:         lines,
		CreatedAt:     it.CreatedAt,
	}
}

type SalesLedger struct {
	client *dynamodb.Client
	table  string
}

func NewSalesLedger(client *dynamodb.Client, table string) *SalesLedger {
	return &SalesLedger{client: client, table: table}
}

// Insert is insert-only: the attribute_not_exists guard refuses to overwrite
// an existing sale under the same id.
func (s *SalesLedger) Insert(ctx context.Context, sale *domain.SaleRecord) error {
	item, err := attributevalue.MarshalMap(toSaleItem(sale))
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(venta_id)"),
	})
	return err
}

func (s *SalesLedger) ListByDate(ctx context.Context, fecha string) ([]domain.SaleRecord, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("fecha").Equal(expression.Value(fecha))).
		Build()
	if err != nil {
		return nil, err
	}

	var out []domain.SaleRecord
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                 aws.String(s.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []saleItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, it.toDomain())
		}
	}
	return out, nil
}

var _ usecase.SalesLedger = (*SalesLedger)(nil)
