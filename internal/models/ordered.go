package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Ordered хранит значения по строковому ключу и помнит порядок вставки ключей.
// В JSON сериализуется как объект с тем же порядком полей, что и при чтении.
// Нулевое значение готово к использованию.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// Get возвращает значение по ключу
func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set записывает значение. Новый ключ добавляется в конец, существующий сохраняет позицию.
func (o *Ordered[V]) Set(key string, value V) {
	if o.values == nil {
		o.values = make(map[string]V)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Keys возвращает копию ключей в порядке вставки
func (o *Ordered[V]) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len возвращает количество ключей
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// MarshalJSON пишет объект в порядке вставки ключей без HTML-экранирования
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := marshalRaw(key)
		if err != nil {
			return nil, err
		}
		v, err := marshalRaw(o.values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value for %q: %w", key, err)
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON читает объект, сохраняя порядок полей. null даёт пустое значение.
// Данные после объекта считаются ошибкой.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	*o = Ordered[V]{}
	if tok == nil {
		return expectEOF(dec)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode value for %q: %w", key, err)
		}
		o.Set(key, value)
	}

	// закрывающая скобка
	if _, err := dec.Token(); err != nil {
		return err
	}
	return expectEOF(dec)
}

func expectEOF(dec *json.Decoder) error {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unexpected data after JSON value: %w", err)
	}
	return fmt.Errorf("unexpected data after JSON value: %v", tok)
}

func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
