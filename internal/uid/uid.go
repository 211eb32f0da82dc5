package uid

import (
	"github.com/asianchinaboi/brocord/internal/logger"
	"github.com/bwmarrin/snowflake"
)

// Snowflake hands out connection ids. Node 0 is used until SetNode is called.
var (
	Snowflake *snowflake.Node
)

// SetNode switches the generator to node id, for running several clients
// that log to the same place.
func SetNode(id int64) error {
	node, err := snowflake.NewNode(id)
	if err != nil {
		return err
	}
	Snowflake = node
	return nil
}

func init() {
	if err := SetNode(0); err != nil {
		logger.Error.Fatalln(err)
	}
}
