package function

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// StreamLogger logs the records of a DynamoDB stream batch.
type StreamLogger struct {
	log *zap.SugaredLogger
}

func NewStreamLogger(log *zap.SugaredLogger) *StreamLogger {
	return &StreamLogger{log: log}
}

func (s *StreamLogger) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	s.log.Infow("stream batch received", "records", len(event.Records))
	for _, record := range event.Records {
		s.log.Infow("stream record",
			"event_name", record.EventName,
			"event_id", record.EventID,
			"event_source_arn", record.EventSourceArn,
			"keys", flatten(record.Change.Keys),
			"new_image", flatten(record.Change.NewImage),
		)
	}
	return nil
}

// flatten renders stream attribute values as plain Go values.
func flatten(attrs map[string]events.DynamoDBAttributeValue) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for name, v := range attrs {
		out[name] = attributeValue(v)
	}
	return out
}

func attributeValue(v events.DynamoDBAttributeValue) any {
	switch v.DataType() {
	case events.DataTypeString:
		return v.String()
	case events.DataTypeNumber:
		return v.Number()
	case events.DataTypeBoolean:
		return v.Boolean()
	case events.DataTypeNull:
		return nil
	case events.DataTypeStringSet:
		return v.StringSet()
	case events.DataTypeNumberSet:
		return v.NumberSet()
	case events.DataTypeBinary:
		return v.Binary()
	case events.DataTypeBinarySet:
		return v.BinarySet()
	case events.DataTypeList:
		list := v.List()
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = attributeValue(item)
		}
		return out
	case events.DataTypeMap:
		return flatten(v.Map())
	default:
		return nil
	}
}
