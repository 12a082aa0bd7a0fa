package event

const PartnerNudgeDestination string = "partner_nudge_requested"
const PartnerNudgeConsumerNotify string = "partner_nudge_requested_notify"

type PartnerNudgeMessage struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
}
