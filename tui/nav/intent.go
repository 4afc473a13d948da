package nav

// Intent is a navigation request from the presentation layer. The set is
// closed: only the types in this file implement it.
type Intent interface {
	intent()
}

// SelectPost opens the comment thread of a post from the current listing.
type SelectPost struct {
	ID int64
}

// SelectCommunity opens a community from the directory. ID wins over Name;
// a name-only selection goes through the lookup endpoint.
type SelectCommunity struct {
	ID   int64
	Name string
}

// SubmitCommunityName resolves a typed community name. An empty name means
// the front page.
type SubmitCommunityName struct {
	Name string
}

type (
	GoBack          struct{}
	GoHome          struct{}
	ShowCommunities struct{}
	Refresh         struct{}
	Quit            struct{}
)

func (SelectPost) intent()          {}
func (SelectCommunity) intent()     {}
func (SubmitCommunityName) intent() {}
func (GoBack) intent()              {}
func (GoHome) intent()              {}
func (ShowCommunities) intent()     {}
func (Refresh) intent()             {}
func (Quit) intent()                {}
