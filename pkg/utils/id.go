package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	characters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	suffixLength = 8
)

// Prefixos por tipo de registro
const (
	PrefixCampaign = "cmp"
	PrefixEvent    = "evt"
	PrefixMetric   = "met"
	PrefixPattern  = "pat"
	PrefixAsset    = "ast"
	PrefixSnapshot = "rpt"
)

// GenerateRecordID gera um id ordenável no tempo: prefixo do tipo,
// millis da criação e um sufixo aleatório. Colisão não é verificada;
// a probabilidade é desprezível para o volume esperado.
func GenerateRecordID(prefix string) string {
	suffix, err := gonanoid.Generate(characters, suffixLength)
	if err != nil {
		// gonanoid só falha se o alfabeto for inválido
		panic(err)
	}

	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// GenerateLedgerID gera o identificador imutável de uma campanha
func GenerateLedgerID() string {
	return GenerateRecordID(PrefixCampaign)
}
