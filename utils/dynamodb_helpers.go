package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ListContains reports whether a list attribute contains the given
// string value
func ListContains(item map[string]types.AttributeValue, field, value string) bool {
	attr, ok := item[field]
	if !ok {
		return false
	}
	list, ok := attr.(*types.AttributeValueMemberL)
	if !ok {
		return false
	}
	for _, entry := range list.Value {
		if s, ok := entry.(*types.AttributeValueMemberS); ok && s.Value == value {
			return true
		}
	}
	return false
}
