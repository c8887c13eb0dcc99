package api

import (
	"log"

	"famtask/internal/pipeline"
	"famtask/internal/repository"
)

// pipe is the shared pipeline instance behind every handler
var pipe *pipeline.Pipeline

// taskRepo persists confirmed tasks when a database is configured; nil
// means in-memory only
var taskRepo repository.TaskRepository

// InitPipeline installs the pipeline the handlers work against
func InitPipeline(p *pipeline.Pipeline) {
	pipe = p
}

// InitTaskRepository initializes the confirmed-task repository
func InitTaskRepository(repo repository.TaskRepository) {
	taskRepo = repo
	if repo != nil {
		log.Printf("Task repository initialized successfully")
	} else {
		log.Printf("Warning: Task repository is nil")
	}
}
