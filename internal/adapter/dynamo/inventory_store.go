package dynamo

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/usecase"
)

// inventoryItem is the wire shape of one Inventario row.
type inventoryItem struct {
	ProductID   string  `dynamodbav:"product_id"`
	Nombre      string  `dynamodbav:"nombre"`
	PrecioVenta float64 `dynamodbav:"precio_venta"`
	Stock       int     `dynamodbav:"stock"`
}

func (it inventoryItem) toDomain() domain.InventoryRecord {
	return domain.InventoryRecord{
		ProductID:   it.ProductID,
		Nombre:      it.Nombre,
		PrecioVenta: decimal.NewFromFloat(it.PrecioVenta),
		Stock:       it.Stock,
	}
}

type InventoryStore struct {
	client *dynamodb.Client
	table  string
}

func NewInventoryStore(client *dynamodb.Client, table string) *InventoryStore {
	return &InventoryStore{client: client, table: table}
}

func (s *InventoryStore) key(productID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"product_id": &types.AttributeValueMemberS{Value: productID},
	}
}

func (s *InventoryStore) Get(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(productID),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, usecase.ErrProductNotFound
	}
	var it inventoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, err
	}
	rec := it.toDomain()
	return &rec, nil
}

func (s *InventoryStore) Scan(ctx context.Context) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{TableName: aws.String(s.table)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []inventoryItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, it.toDomain())
		}
	}
	return out, nil
}

// DecrementStock applies "stock = stock - qty" guarded by "stock >= qty" in
// a single UpdateItem, so the check and the write cannot interleave with a
// concurrent checkout.
func (s *InventoryStore) DecrementStock(ctx context.Context, productID string, qty int) error {
	upd := expression.Set(expression.Name("stock"),
		expression.Name("stock").Minus(expression.Value(qty)))
	cond := expression.Name("stock").GreaterThanEqual(expression.Value(qty))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       s.key(productID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		// The guard also fails for an unknown product; look it up to report
		// the right store error.
		if _, gerr := s.Get(ctx, productID); gerr != nil {
			return gerr
		}
		return usecase.ErrInsufficientStock
	}
	return err
}

func (s *InventoryStore) AddStock(ctx context.Context, productID string, qty int) error {
	upd := expression.Set(expression.Name("stock"),
		expression.Name("stock").Plus(expression.Value(qty)))
	cond := expression.AttributeExists(expression.Name("product_id"))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       s.key(productID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return usecase.ErrProductNotFound
	}
	return err
}

var _ usecase.InventoryStore = (*InventoryStore)(nil)
