package model

type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	TaskIDs      []string `json:"task_ids"`
	Ctime        int64    `json:"ctime"`
	Mtime        int64    `json:"mtime"`
}
