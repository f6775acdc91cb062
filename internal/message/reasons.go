package message

import "fmt"

// CodePendingPickup is the one incidence code the composer branches on:
// the package waits at a pickup point instead of needing a re-delivery.
const CodePendingPickup = "PUNTO_RECOGIDA"

// incidenceReasons maps carrier incidence codes to the human-readable
// reason embedded in messages. This map is the single source of truth;
// nothing else interprets raw codes.
var incidenceReasons = map[string]string{
	"AUSENTE":               "ausencia del destinatario en el momento de la entrega",
	"RECHAZADO":             "el destinatario rechazó el envío",
	CodePendingPickup:       "el paquete está pendiente de recogida",
	"DIRECCION_INCOMPLETA":  "la dirección de entrega está incompleta",
	"APLAZADO":              "la entrega fue aplazada a petición del destinatario",
	"DIRECCION_DESCONOCIDA": "la dirección es desconocida para el repartidor",
	"EN_REPARTO":            "el paquete está en reparto",
	"FESTIVO":               "festivo local o causa de fuerza mayor",
}

// ResolveReason maps an incidence code to display text. Unknown or missing
// codes resolve to a generic label tagged with the raw code so the operator
// can still trace it.
func ResolveReason(code string) string {
	if reason, ok := incidenceReasons[code]; ok {
		return reason
	}
	if code == "" {
		code = "SIN_CODIGO"
	}
	return fmt.Sprintf("incidencia en la entrega (código %s)", code)
}
