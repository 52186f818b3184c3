package queue

const TypePromptPregenerate = "prompt:pregenerate"

type PromptPregeneratePayload struct {
	ComplaintID string `json:"complaint_id"`
	OwnerID     string `json:"owner_id"`
	Kind        string `json:"kind"`
}
