package domain

// StatusOptions are the purchasing workflow statuses, in workflow order.
func StatusOptions() []string {
	return []string{"Nueva", "En Proceso", "Pedido Realizado", "Recibido", "Cancelada"}
}

// ValidStatus reports whether s is one of the workflow statuses.
func ValidStatus(s string) bool {
	for _, option := range StatusOptions() {
		if option == s {
			return true
		}
	}
	return false
}
