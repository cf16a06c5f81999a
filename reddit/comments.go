package reddit

import "github.com/rxddit/rxddit/models"

// FindComment walks the reply tree depth-first in pre-order and returns the
// first node whose id matches, or nil. An empty id matches the first node
// encountered; callers use that to grab "any top comment".
func FindComment(children []models.RedditChild, id string) *models.RedditPostData {
	for i := range children {
		data := &children[i].Data
		if id == "" || data.ID == id {
			return data
		}

		if comment := FindComment(data.Replies.Children(), id); comment != nil {
			return comment
		}
	}

	return nil
}
