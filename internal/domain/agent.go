package domain

import "github.com/google/uuid"

// AgentStatus represents the lifecycle state of a trading agent
type AgentStatus string

const (
	AgentStatusActive  AgentStatus = "active"
	AgentStatusPaused  AgentStatus = "paused"
	AgentStatusStopped AgentStatus = "stopped"
)

// RiskLevel represents the configured risk appetite of an agent
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Agent represents a trading agent owned by a user.
// Agents are managed by the external agent subsystem; this core only
// reads them to group trades by strategy and build the risk breakdown.
type Agent struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Strategy string
	Risk     RiskLevel
	Status   AgentStatus
}
