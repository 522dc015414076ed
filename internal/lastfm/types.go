package lastfm

// Tag represents a Last.fm tag with popularity count.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"` // absent in artist.getTopTags
	URL   string `json:"url"`
}

// topTagsResponse is the JSON response for track.getTopTags and artist.getTopTags.
type topTagsResponse struct {
	TopTags struct {
		Tag  []Tag `json:"tag"`
		Attr struct {
			Artist string `json:"artist"`
			Track  string `json:"track,omitempty"`
		} `json:"@attr"`
	} `json:"toptags"`
}

// apiError represents a Last.fm API error response.
type apiError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}
