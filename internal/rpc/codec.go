package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Имя кодека в content-subtype gRPC вызовов.
const codecName = "json"

// Сообщения транспорта — обычные структуры, сериализуемые в JSON.
// Сгенерированного protobuf-кода в дереве нет: дескриптор сервиса
// и кодек написаны вручную.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
