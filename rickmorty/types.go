package rickmorty

// PageInfo contains pagination information for a list response
type PageInfo struct {
	Count int     `json:"count"`
	Pages int     `json:"pages"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
}

// HasNext checks if the server advertises another page
func (pi PageInfo) HasNext() bool {
	return pi.Next != nil
}

// CharacterPage represents the paginated response from the character endpoint
type CharacterPage struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}

// Location is a named reference to a location resource
type Location struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Character represents a character resource
type Character struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Species  string   `json:"species"`
	Type     string   `json:"type"`
	Gender   string   `json:"gender"`
	Origin   Location `json:"origin"`
	Location Location `json:"location"`
	Image    string   `json:"image"`
	Episode  []string `json:"episode"`
	URL      string   `json:"url"`
	Created  string   `json:"created"`
}

// EpisodeIDs returns the IDs parsed from the character's episode URLs
func (c *Character) EpisodeIDs() []int {
	return ResourceIDs(c.Episode)
}

// Episode represents an episode resource
type Episode struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	AirDate    string   `json:"air_date"`
	Episode    string   `json:"episode"`
	Characters []string `json:"characters"`
	URL        string   `json:"url"`
	Created    string   `json:"created"`
}
