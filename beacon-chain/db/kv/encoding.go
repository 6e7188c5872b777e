package kv

import (
	"context"
	"reflect"

	"github.com/golang/snappy"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func decode(ctx context.Context, data []byte, dst interface{}) error {
	_, span := trace.StartSpan(ctx, "BeaconDB.decode")
	defer span.End()

	data, err := snappy.Decode(nil, data)
	if err != nil {
		return errors.Wrap(err, "could not snappy decode")
	}
	return json.Unmarshal(data, dst)
}

func encode(ctx context.Context, msg interface{}) ([]byte, error) {
	_, span := trace.StartSpan(ctx, "BeaconDB.encode")
	defer span.End()

	if msg == nil || reflect.ValueOf(msg).IsNil() {
		return nil, errors.New("cannot encode nil message")
	}
	enc, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, enc), nil
}
