package dto

import (
	"time"

	"github.com/orgspace/orgspace-api/internal/models"
)

// OrganisationDTO represents an organisation in API responses
type OrganisationDTO struct {
	ID          uint64                      `json:"id"`
	Name        string                      `json:"name"`
	Slug        string                      `json:"slug"`
	Category    models.OrganisationCategory `json:"category"`
	IsAdminOrg  bool                        `json:"is_admin_org"`
	IsInactive  bool                        `json:"is_inactive"`
	IsInvisible bool                        `json:"is_invisible"`
	InviteLink  string                      `json:"invite_link,omitempty"`
	Description string                      `json:"description,omitempty"`
}

// OrganisationMemberDTO represents a member in an organisation
type OrganisationMemberDTO struct {
	User       UserDTO   `json:"user"`
	IsIGHead   bool      `json:"is_ig_head"`
	AssignedAt time.Time `json:"assigned_at"`
}

// OrganisationDetailDTO represents detailed organisation information
type OrganisationDetailDTO struct {
	OrganisationDTO
	Members []OrganisationMemberDTO `json:"members"`
}

// OrganisationListResponse represents a paginated list of organisations
type OrganisationListResponse struct {
	Organisations []OrganisationDTO `json:"organisations"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	TotalCount    int64             `json:"total_count"`
	TotalPages    int               `json:"total_pages"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// UserMembershipDTO represents an organisation a user belongs to
type UserMembershipDTO struct {
	Organisation OrganisationDTO `json:"organisation"`
	IsIGHead     bool            `json:"is_ig_head"`
	AssignedAt   time.Time       `json:"assigned_at"`
}

// UserDetailDTO represents a user with their memberships
type UserDetailDTO struct {
	UserDTO
	Organisations []UserMembershipDTO `json:"organisations"`
}

// ToOrganisationDTO converts an Organisation model to OrganisationDTO
func ToOrganisationDTO(org models.Organisation) OrganisationDTO {
	return OrganisationDTO{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		Category:    org.Category,
		IsAdminOrg:  org.IsAdminOrg,
		IsInactive:  org.IsInactive,
		IsInvisible: org.IsInvisible,
		InviteLink:  org.InviteLink,
		Description: org.Description,
	}
}

// ToOrganisationMemberDTO converts a membership edge to DTO
func ToOrganisationMemberDTO(member models.UserOnOrg) OrganisationMemberDTO {
	return OrganisationMemberDTO{
		User:       ToUserDTO(member.User),
		IsIGHead:   member.IsIGHead,
		AssignedAt: member.AssignedAt,
	}
}

// ToOrganisationDetailDTO converts an organisation with members to detailed DTO
func ToOrganisationDetailDTO(org models.Organisation, members []models.UserOnOrg) OrganisationDetailDTO {
	memberDTOs := make([]OrganisationMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToOrganisationMemberDTO(member)
	}

	return OrganisationDetailDTO{
		OrganisationDTO: ToOrganisationDTO(org),
		Members:         memberDTOs,
	}
}

// ToOrganisationListResponse converts a slice of organisations to OrganisationListResponse
func ToOrganisationListResponse(orgs []models.Organisation, page, pageSize int, totalCount int64) OrganisationListResponse {
	items := make([]OrganisationDTO, len(orgs))
	for i, org := range orgs {
		items[i] = ToOrganisationDTO(org)
	}

	return OrganisationListResponse{
		Organisations: items,
		Page:          page,
		PageSize:      pageSize,
		TotalCount:    totalCount,
		TotalPages:    totalPages(totalCount, pageSize),
	}
}

// ToUserListResponse converts a slice of users to UserListResponse
func ToUserListResponse(users []models.User, page, pageSize int, totalCount int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}

	return UserListResponse{
		Users:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}

// ToUserDetailDTO converts a user with memberships to UserDetailDTO
func ToUserDetailDTO(user models.User, memberships []models.UserOnOrg) UserDetailDTO {
	orgs := make([]UserMembershipDTO, len(memberships))
	for i, membership := range memberships {
		orgs[i] = UserMembershipDTO{
			Organisation: ToOrganisationDTO(membership.Organisation),
			IsIGHead:     membership.IsIGHead,
			AssignedAt:   membership.AssignedAt,
		}
	}

	return UserDetailDTO{
		UserDTO:       ToUserDTO(user),
		Organisations: orgs,
	}
}

func totalPages(totalCount int64, pageSize int) int {
	pages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		pages++
	}
	return pages
}
