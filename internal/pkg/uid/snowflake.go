package uid

import "github.com/bwmarrin/snowflake"

// NumberID generates sortable numeric identifiers.
type NumberID interface {
	Generate() int64
}

// Snowflake generates time-ordered int64 IDs from a single node.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake constructs a Snowflake generator on node 1.
func NewSnowflake() (*Snowflake, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
