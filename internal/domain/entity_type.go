package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// EntityType identifica cada tipo de registro de negocio con número consecutivo.
type EntityType string

const (
	EntityTradeIn  EntityType = "trade_in"
	EntityRepair   EntityType = "repair"
	EntityLead     EntityType = "lead"
	EntityDelivery EntityType = "delivery"
	EntitySale     EntityType = "sale"
	EntityActor    EntityType = "actor" // solo para auditoría, sin número de negocio
)

// businessNumberBase: el primer número emitido de cada tipo es base+1 (ej. TI-10001).
const businessNumberBase = 10000

var prefixes = map[EntityType]string{
	EntityTradeIn:  "TI",
	EntityRepair:   "RP",
	EntityLead:     "LD",
	EntityDelivery: "DL",
	EntitySale:     "SL",
}

// WorkflowTypes tipos con ciclo de vida (máquina de estados).
var WorkflowTypes = []EntityType{EntityTradeIn, EntityRepair, EntityLead, EntityDelivery}

// NumberedTypes tipos que reciben número de negocio.
var NumberedTypes = []EntityType{EntityTradeIn, EntityRepair, EntityLead, EntityDelivery, EntitySale}

// ParseEntityType valida el tipo recibido desde la capa externa.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.TrimSpace(s))
	if _, ok := prefixes[t]; !ok {
		return "", NewValidationError("entity_type", "tipo desconocido: "+s)
	}
	return t, nil
}

// Prefix devuelve el prefijo del número de negocio ("" si el tipo no se numera).
func (t EntityType) Prefix() string { return prefixes[t] }

// IsWorkflow informa si el tipo tiene máquina de estados.
func (t EntityType) IsWorkflow() bool {
	for _, w := range WorkflowTypes {
		if w == t {
			return true
		}
	}
	return false
}

// FormatBusinessNumber construye el número legible a partir de la cantidad de
// registros ya emitidos del tipo: PREFIJO-(10000+1+count) con 5 dígitos.
func FormatBusinessNumber(t EntityType, issued int64) (string, error) {
	p := t.Prefix()
	if p == "" {
		return "", fmt.Errorf("número de negocio: tipo %q sin prefijo", t)
	}
	if issued < 0 {
		return "", fmt.Errorf("número de negocio: contador negativo %d", issued)
	}
	return fmt.Sprintf("%s-%05d", p, businessNumberBase+1+issued), nil
}

// ParseBusinessNumber devuelve el ordinal (1 = primero) de un número de negocio.
func ParseBusinessNumber(number string) (EntityType, int64, error) {
	prefix, digits, ok := strings.Cut(number, "-")
	if !ok {
		return "", 0, NewValidationError("number", "formato PREFIJO-NNNNN")
	}
	for t, p := range prefixes {
		if p != prefix {
			continue
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil || n <= businessNumberBase {
			return "", 0, NewValidationError("number", "consecutivo inválido")
		}
		return t, n - businessNumberBase, nil
	}
	return "", 0, NewValidationError("number", "prefijo desconocido")
}
