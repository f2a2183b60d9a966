package gtdserver

import "github.com/mark3labs/mcp-go/mcp"

var stringItems = mcp.Items(map[string]any{"type": "string"})

func uuidArg() mcp.ToolOption {
	return mcp.WithString("uuid", mcp.Required(), mcp.Description("Task UUID"))
}

var (
	addTaskTool = mcp.NewTool("add_task",
		mcp.WithDescription("Add a task to TaskWarrior. Returns the created task."),
		mcp.WithString("description", mcp.Required(), mcp.Description("What needs doing")),
		mcp.WithString("project", mcp.Description("Project, dotted for subprojects (e.g. 'home.garden')")),
		mcp.WithString("priority", mcp.Description("H, M or L")),
		mcp.WithArray("tags", mcp.Description("Tags without '+'"), stringItems),
		mcp.WithString("due", mcp.Description("Due date: ISO date or TaskWarrior synonym such as 'tomorrow' or 'eow'")),
		mcp.WithString("scheduled", mcp.Description("Date work can start")),
		mcp.WithString("wait", mcp.Description("Hide the task until this date")),
		mcp.WithString("until", mcp.Description("Expire the task after this date")),
		mcp.WithString("context", mcp.Description("GTD context such as 'home' or 'computer' (context UDA)")),
		mcp.WithString("energy", mcp.Description("Energy needed: high, medium or low (energy UDA)")),
		mcp.WithString("parent", mcp.Description("UUID of the parent task")),
		mcp.WithString("recur", mcp.Description("Recurrence such as 'weekly'; requires due")),
		mcp.WithArray("depends", mcp.Description("UUIDs of tasks this one waits on"), stringItems),
		mcp.WithArray("annotations", mcp.Description("Notes to attach"), stringItems),
	)

	listTasksTool = mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks matching filters, most urgent first."),
		mcp.WithString("project", mcp.Description("Project (includes subprojects)")),
		mcp.WithArray("tags", mcp.Description("Tags every task must carry"), stringItems),
		mcp.WithString("status", mcp.Description("pending (default), completed, deleted, waiting, recurring or all")),
		mcp.WithString("description_contains", mcp.Description("Text the description must contain")),
		mcp.WithString("due_before", mcp.Description("Due before this date")),
		mcp.WithString("due_after", mcp.Description("Due after this date")),
		mcp.WithString("scheduled_before", mcp.Description("Scheduled before this date")),
		mcp.WithString("scheduled_after", mcp.Description("Scheduled after this date")),
		mcp.WithString("modified_before", mcp.Description("Last modified before this date")),
		mcp.WithString("modified_after", mcp.Description("Last modified after this date")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of tasks (default: 50)")),
	)

	getTaskDetailsTool = mcp.NewTool("get_task_details",
		mcp.WithDescription("Get every attribute of one task, annotations included."),
		uuidArg(),
	)

	modifyTaskTool = mcp.NewTool("modify_task",
		mcp.WithDescription("Change a task's attributes. Omitted fields are left alone."),
		uuidArg(),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("status", mcp.Description("pending, completed, deleted or waiting")),
		mcp.WithString("project", mcp.Description("New project")),
		mcp.WithString("priority", mcp.Description("H, M or L")),
		mcp.WithString("due", mcp.Description("New due date")),
		mcp.WithString("scheduled", mcp.Description("New scheduled date")),
		mcp.WithString("wait", mcp.Description("New wait date")),
		mcp.WithString("until", mcp.Description("New expiry date")),
		mcp.WithString("context", mcp.Description("New context")),
		mcp.WithString("energy", mcp.Description("high, medium or low")),
		mcp.WithString("parent", mcp.Description("UUID of the new parent task")),
		mcp.WithString("recur", mcp.Description("New recurrence")),
		mcp.WithArray("add_tags", mcp.Description("Tags to add"), stringItems),
		mcp.WithArray("remove_tags", mcp.Description("Tags to remove"), stringItems),
		mcp.WithArray("add_depends", mcp.Description("UUIDs of tasks to depend on"), stringItems),
		mcp.WithArray("remove_depends", mcp.Description("UUIDs of dependencies to drop"), stringItems),
		mcp.WithArray("clear", mcp.Description("Attributes to remove, e.g. ['due', 'project']"), stringItems),
	)

	markTaskDoneTool = mcp.NewTool("mark_task_done",
		mcp.WithDescription("Complete a task. Completing a finished task changes nothing."),
		uuidArg(),
	)

	deleteTaskTool = mcp.NewTool("delete_task",
		mcp.WithDescription("Mark a task deleted. TaskWarrior keeps it and 'task undo' restores it."),
		uuidArg(),
	)

	startTaskTool = mcp.NewTool("start_task",
		mcp.WithDescription("Mark a task as being worked on now."),
		uuidArg(),
	)

	stopTaskTool = mcp.NewTool("stop_task",
		mcp.WithDescription("Stop working on a started task."),
		uuidArg(),
	)

	addAnnotationTool = mcp.NewTool("add_annotation",
		mcp.WithDescription("Attach a timestamped note to a task."),
		uuidArg(),
		mcp.WithString("annotation", mcp.Required(), mcp.Description("Note text")),
	)

	removeAnnotationTool = mcp.NewTool("remove_annotation",
		mcp.WithDescription("Remove a note from a task."),
		uuidArg(),
		mcp.WithString("annotation", mcp.Required(), mcp.Description("Text of the note to remove")),
	)

	getNextActionsTool = mcp.NewTool("get_next_actions",
		mcp.WithDescription("What can I do now? Pending tasks that are not waiting, not someday/maybe and not blocked, most urgent first, with counts and recommendations."),
		mcp.WithString("context", mcp.Description("Only tasks in this context")),
		mcp.WithString("energy_level", mcp.Description("high, medium or low")),
		mcp.WithString("time_available", mcp.Description("5min, 15min, 30min, 1hour or 2hours+")),
		mcp.WithBoolean("include_blocked", mcp.Description("Include tasks with unfinished dependencies")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of tasks")),
	)

	processInboxTool = mcp.NewTool("process_inbox",
		mcp.WithDescription("List inbox items that need clarifying, organizing or deferring."),
	)

	getWaitingForTool = mcp.NewTool("get_waiting_for",
		mcp.WithDescription("What am I waiting on? Tasks hidden until a wait date, grouped."),
		mcp.WithString("group_by", mcp.Description("blocker (latest annotation, default), project or date")),
	)

	getSomedayMaybeTool = mcp.NewTool("get_someday_maybe",
		mcp.WithDescription("List someday/maybe ideas grouped by project, flagging those not reviewed in 90 days."),
		mcp.WithString("project", mcp.Description("Only this project")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of items")),
	)

	weeklyReviewTool = mcp.NewTool("weekly_review",
		mcp.WithDescription("Run the GTD weekly review: completed this week, inbox, overdue, waiting, projects without next actions, stalled projects and habit streaks."),
	)
)
