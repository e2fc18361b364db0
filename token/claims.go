package token

import "fmt"

// Action is the permission granted on a topic resource: publish or subscribe.
type Action string

const (
	ActionPublish   Action = "publish"
	ActionSubscribe Action = "subscribe"
)

// TopicPermission is a single permission claim carried by data-access and
// protocol tokens: an action on a topic resource.
type TopicPermission struct {
	Action   Action   `json:"action"`
	Resource Resource `json:"resource"`
}

// Resource names the data stream a permission applies to, in terms of stream,
// prefix and topic pattern. The resource type is always "topic".
type Resource struct {
	Type   string `json:"type"`
	Stream string `json:"stream"`
	Prefix string `json:"prefix"`
	Topic  string `json:"topic"`
}

// NewTopicPermission builds a permission claim for a topic resource.
//
// stream is the data stream name (e.g. "weather"), prefix the topic prefix
// (e.g. "/tt") and topicPattern the topic pattern (e.g. "+/+/something/#").
func NewTopicPermission(action Action, stream, prefix, topicPattern string) TopicPermission {
	return TopicPermission{
		Action: action,
		Resource: Resource{
			Type:   "topic",
			Stream: stream,
			Prefix: prefix,
			Topic:  topicPattern,
		},
	}
}

// FullQualifiedTopicName returns "{prefix}/{stream}/{topic}" for the claim's
// resource.
func (p TopicPermission) FullQualifiedTopicName() string {
	return fmt.Sprintf("%s/%s/%s", p.Resource.Prefix, p.Resource.Stream, p.Resource.Topic)
}
