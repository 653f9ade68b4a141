package services

import "github.com/baharkarakas/projectify-backend/internal/models"

// appendUnique adds id unless an equal id is already present.
func appendUnique(ids []string, id string) []string {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// linkReport records reportID on both entities and links u and p to each other.
func linkReport(u *models.User, p *models.Project, reportID string) {
	u.Reports = appendUnique(u.Reports, reportID)
	p.Reports = appendUnique(p.Reports, reportID)
	u.Projects = appendUnique(u.Projects, p.ID)
	p.Users = appendUnique(p.Users, u.ID)
}
