// file: dto/club.go
package dto

type RegisterReq struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Cohort   *float64 `json:"cohort"`
	Session  string   `json:"session" binding:"required"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateRoleReq struct {
	Role string `json:"role" binding:"required"`
}

type CreateNoticeReq struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateEventReq takes dates as YYYY-MM-DD; EndDate defaults to StartDate.
type CreateEventReq struct {
	Title     string `json:"title" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"`
	RRule     string `json:"rrule"`
}

// ReserveReq takes RFC 3339 times or "2006-01-02T15:04" in the club timezone.
type ReserveReq struct {
	Item  string `json:"item" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}
