package entity

import "time"

// ContactMessage mensaje del formulario de contacto (mensajes_contacto).
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	Date      time.Time
	Read      bool
}
