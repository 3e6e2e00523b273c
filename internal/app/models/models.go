package models

// RoleType represents a user role
type RoleType string

const (
	RoleUser  RoleType = "USER"
	RoleAdmin RoleType = "ADMIN"
)

// PlanTier represents a subscription plan tier
type PlanTier string

const (
	PlanFree PlanTier = "FREE"
	PlanPro  PlanTier = "PRO"
)

// Stream represents the exam stream a full-length test targets
type Stream string

const (
	StreamNEET Stream = "NEET"
	StreamJEE  Stream = "JEE"
)
