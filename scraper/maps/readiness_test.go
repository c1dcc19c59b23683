package maps

import "testing"

const (
	searchURL = "https://www.google.com/maps/search/cafe+lisbon"
	solURL    = "https://www.google.com/maps/place/Cafe+Sol/@38.71,-9.14,17z/data=!3m1"
	luaURL    = "https://www.google.com/maps/place/Cafe+Lua/@38.72,-9.13,17z/data=!3m1"
	luaHref   = "https://www.google.com/maps/place/Cafe+Lua/data=!4m7!3m6"
	barURL    = "https://www.google.com/maps/place/Bar?hl=en"
)

func TestPanelReady(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		view   PanelView
		want   bool
	}{
		{"no panel", "", PanelView{}, false},
		{"first search", "", PanelView{Selector: PanelFallbackSelector, FirstHref: luaHref}, true},
		{"old results still shown", luaHref, PanelView{Selector: PanelFallbackSelector, FirstHref: luaHref}, false},
		{"new results", luaHref, PanelView{Selector: PanelSelector, FirstHref: "https://www.google.com/maps/place/Bar/data=x"}, true},
		{"new search with no results", luaHref, PanelView{Selector: PanelFallbackSelector}, true},
	}
	for _, tt := range tests {
		if got := panelReady(tt.marker, tt.view); got != tt.want {
			t.Errorf("%s: panelReady = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetailReady(t *testing.T) {
	lua := Listing{Index: 1, Label: "Cafe Lua", Href: luaHref}
	tests := []struct {
		name    string
		prevURL string
		l       Listing
		view    PaneView
		want    bool
	}{
		{"first listing rendered", searchURL, lua, PaneView{URL: luaURL, Heading: "Cafe Lua"}, true},
		{"first listing not rendered", searchURL, lua, PaneView{URL: searchURL}, false},
		{"previous pane still shown", solURL, lua, PaneView{URL: solURL, Heading: "Cafe Sol"}, false},
		{"url switched", solURL, lua, PaneView{URL: luaURL, Heading: "Cafe Sol"}, true},
		{"heading missing", solURL, lua, PaneView{URL: luaURL}, false},
		{"same place clicked again", luaURL, lua, PaneView{URL: luaURL, Heading: "Cafe Lua"}, true},
		{"same place, label only", luaURL, Listing{Label: " Cafe  Lua "}, PaneView{URL: luaURL, Heading: "Cafe Lua"}, true},
		{"place url without coordinates", solURL, lua, PaneView{URL: "https://www.google.com/maps/place/Cafe+Lua/data=!4m2", Heading: "Cafe Lua"}, false},
	}
	for _, tt := range tests {
		if got := detailReady(tt.prevURL, tt.l, tt.view); got != tt.want {
			t.Errorf("%s: detailReady = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestPaneShowsWithoutCoordinates(t *testing.T) {
	lua := Listing{Label: "Cafe Lua", Href: luaHref}
	noCoords := PaneView{URL: "https://www.google.com/maps/place/Cafe+Lua/data=!4m2", Heading: "Cafe Lua"}
	if !paneShows(solURL, lua, noCoords) {
		t.Error("pane of the clicked place should count as shown without coordinates")
	}
	if paneShows(solURL, lua, PaneView{URL: solURL, Heading: "Cafe Sol"}) {
		t.Error("previous place's pane must not count as shown")
	}
}

func TestPlaceKey(t *testing.T) {
	tests := map[string]string{
		solURL:    "Cafe+Sol",
		luaHref:   "Cafe+Lua",
		searchURL: "",
		barURL:    "Bar",
		"":        "",
	}
	for in, want := range tests {
		if got := placeKey(in); got != want {
			t.Errorf("placeKey(%q) = %q; want %q", in, got, want)
		}
	}
}
