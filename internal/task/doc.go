// Package task defines the task model and the collection persisted in the task file.
//
// The task file is a JSON array with 2-space indentation:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "buy milk",
//	    "status": "todo",
//	    "createdAt": "2024-01-01 09:30:00",
//	    "updatedAt": "2024-01-01 09:30:00"
//	  }
//	]
//
// # Task Status Values
//
//   - "todo": Task is pending (default for new tasks)
//   - "in-progress": Task is being worked on
//   - "done": Task is complete
//
// Any status can move to any other, including itself.
//
// # Identifiers
//
// Ids are positive integers assigned as the highest existing id plus one.
// Deleting a task leaves a gap; ids are never handed out twice while the
// higher ids remain in the file.
package task
