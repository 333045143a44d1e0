package entity

// State unidad federativa (GET /infos/state).
type State struct {
	ID   ID     `json:"id"`
	UF   string `json:"uf"`
	Name string `json:"name"`
}

// City municipio (GET /infos/city?state=UF).
type City struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	UF   string `json:"uf"`
}
