package inmemdb

import (
	"sync"

	"github.com/trezcool/edtrack/core/assignment"
	"github.com/trezcool/edtrack/core/user"
)

type (
	// DB holds every table in memory. Each table has its own lock and primary key sequence.
	DB struct {
		user       *userTable
		assignment *assignmentTable
		submission *submissionTable
	}

	userTable struct {
		mutex   sync.RWMutex
		pkCount int64
		table   map[int64]*user.User
	}

	assignmentTable struct {
		mutex   sync.RWMutex
		pkCount int64
		table   map[int64]*assignment.Assignment
	}

	// submissions are kept in a slice to preserve insertion order.
	submissionTable struct {
		mutex   sync.RWMutex
		pkCount int64
		rows    []assignment.Submission
	}
)

func Open() *DB {
	return &DB{
		user:       &userTable{table: make(map[int64]*user.User)},
		assignment: &assignmentTable{table: make(map[int64]*assignment.Assignment)},
		submission: &submissionTable{},
	}
}
