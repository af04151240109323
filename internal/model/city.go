package model

// City is an official city record as stored in the cities collection.
type City struct {
	Name     string `json:"name" firestore:"name"`
	State    string `json:"state" firestore:"state"`
	IBGECode string `json:"ibgeCode" firestore:"ibgeCode"`
}

// ToMap converts a City to a Firestore document map.
func (c City) ToMap() map[string]any {
	return map[string]any{
		"name":     c.Name,
		"state":    c.State,
		"ibgeCode": c.IBGECode,
		"official": true,
	}
}
