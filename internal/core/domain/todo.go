package domain

// Todo is a single task owned by one user.
type Todo struct {
	ID          int64  `json:"id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Priority    int    `json:"priority" bson:"priority"`
	Complete    bool   `json:"complete" bson:"complete"`
	OwnerID     int64  `json:"owner_id" bson:"owner_id"`
}
