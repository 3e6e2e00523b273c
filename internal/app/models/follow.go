package models

// FollowRecord holds one user's side of the follow graph, stored in
// user-follows/{userId}.json. Follow and unfollow update two of these files
// in tandem; membership is checked before appending so both operations are
// idempotent.
type FollowRecord struct {
	UserID    string   `json:"userId"`
	Following []string `json:"following"`
	Followers []string `json:"followers"`
}

// Contains reports whether id is present in list.
func Contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns list with every occurrence of id removed.
func Without(list []string, id string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
