package entity

// School es la escuela dueña de los pedidos (solo lectura para el motor).
type School struct {
	ID        int64
	Name      string
	Number    string
	ProjectID int64
}

// Project agrupa escuelas y pedidos (solo lectura para el motor).
type Project struct {
	ID   int64
	Name string
}

// User es el usuario que crea cajas; el motor solo necesita su nombre para display.
type User struct {
	ID   int64
	Name string
}
