package common

import (
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	node, err := snowflake.NewNode(time.Now().UnixNano() % 1024)
	if err != nil {
		panic(err)
	}
	snowflakeNode = node
}

// UUIDint64 generates a unique int64 id for rows that are not auto-incremented.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// GetSecretSalt reads the hashing salt from the environment, falling back to a
// static development value.
func GetSecretSalt() string {
	if v := os.Getenv("THEO_SECRET_SALT"); v != "" {
		return v
	}
	return "theoafrique"
}

// Sha256HashWithSalt returns the hex encoded sha256 of value+salt.
func Sha256HashWithSalt(value, salt string) string {
	sum := sha256.Sum256([]byte(value + salt))
	return fmt.Sprintf("%x", sum)
}
