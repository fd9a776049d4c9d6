package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"devtinder_server/models"
	"devtinder_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoAPI for service tests. It stores
// marshaled items per table and understands the condition expressions
// the services actually use: attribute_not_exists on the partition
// key, and status equality/membership guards.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

var fakeTableKeys = map[string]string{
	models.UsersTable:              "userId",
	models.ConnectionRequestsTable: "pairKey",
	models.ChatsTable:              "chatId",
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return f.tables[name]
}

func (f *fakeDynamo) keyOf(tableName string, item map[string]types.AttributeValue) string {
	return utils.ExtractString(item, fakeTableKeys[tableName])
}

func (f *fakeDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	f.table(tableName)[f.keyOf(tableName, marshaled)] = marshaled
	return nil
}

func (f *fakeDynamo) PutItemWithCondition(ctx context.Context, tableName string, item interface{}, conditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	key := f.keyOf(tableName, marshaled)
	existing, exists := f.table(tableName)[key]

	switch {
	case strings.Contains(conditionExpression, "attribute_not_exists"):
		if exists {
			return ErrConditionFailed
		}
	case strings.Contains(conditionExpression, "#status = :expected"):
		if !exists || utils.ExtractString(existing, "status") != attrString(expressionAttributeValues[":expected"]) {
			return ErrConditionFailed
		}
	default:
		return fmt.Errorf("fakeDynamo: unsupported condition %q", conditionExpression)
	}

	f.table(tableName)[key] = marshaled
	return nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.table(tableName)[f.keyOf(tableName, key)]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (f *fakeDynamo) DeleteItemWithCondition(ctx context.Context, tableName string, key map[string]types.AttributeValue, conditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	keyValue := f.keyOf(tableName, key)
	existing, exists := f.table(tableName)[keyValue]
	if !exists {
		return ErrConditionFailed
	}

	if strings.Contains(conditionExpression, "#status IN") {
		status := utils.ExtractString(existing, "status")
		allowed := false
		for _, v := range expressionAttributeValues {
			if attrString(v) == status {
				allowed = true
			}
		}
		if !allowed {
			return ErrConditionFailed
		}
	}

	delete(f.table(tableName), keyValue)
	return nil
}

func (f *fakeDynamo) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// key conditions are all of the "field = :placeholder" shape
	parts := strings.Fields(keyConditionExpression)
	if len(parts) != 3 || parts[1] != "=" {
		return nil, fmt.Errorf("fakeDynamo: unsupported key condition %q", keyConditionExpression)
	}
	field, want := parts[0], attrString(expressionAttributeValues[parts[2]])

	var results []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		if utils.ExtractString(item, field) == want {
			results = append(results, item)
			if limit > 0 && int32(len(results)) == limit {
				break
			}
		}
	}
	return results, nil
}

func (f *fakeDynamo) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var filtered []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		excluded := false
		for field, value := range excludeFields {
			if utils.ExtractString(item, field) == value {
				excluded = true
			}
		}
		if excluded {
			continue
		}
		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, item)
		}
	}
	return attributevalue.UnmarshalListOfMaps(filtered, result)
}

func attrString(attr types.AttributeValue) string {
	if s, ok := attr.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
