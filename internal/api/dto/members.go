package dto

import "strings"

type AddMemberRequest struct {
	FullName    string `json:"full_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

func (r AddMemberRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.FullName) == "" {
		errors["full_name"] = "Full name is required"
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		errors["display_name"] = "Display name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		errors["email"] = "Email is required"
	}

	return errors
}

type MemberResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}
