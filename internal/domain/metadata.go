package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata é um mapa livre de chave/valor persistido como jsonb
type Metadata map[string]any

// Value serializa o metadata para o driver do banco
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan carrega o metadata a partir de uma coluna jsonb
func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("tipo inesperado para metadata: %T", src)
	}

	if len(data) == 0 {
		*m = Metadata{}
		return nil
	}

	return json.Unmarshal(data, m)
}

// CoerceMetadata aceita apenas mapas reais; qualquer outra forma
// (array, escalar, ausência) vira um mapa vazio
func CoerceMetadata(v any) Metadata {
	if md, ok := v.(map[string]any); ok {
		return Metadata(md)
	}
	if md, ok := v.(Metadata); ok {
		return md
	}
	return Metadata{}
}
