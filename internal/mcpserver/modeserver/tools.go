package modeserver

import "github.com/mark3labs/mcp-go/mcp"

var (
	modeStatusTool = mcp.NewTool("mode_status",
		mcp.WithDescription("Get current mode status including mode, duration, context, and attention counts."),
	)

	enterModeTool = mcp.NewTool("enter_mode",
		mcp.WithDescription("Enter a mode: 'ops' (trusted steward), 'ceremonial' (/open ritual), or 'default' (coding)."),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description(`The mode to enter: "ops", "ceremonial", or "default"`),
		),
	)

	exitModeTool = mcp.NewTool("exit_mode",
		mcp.WithDescription("Exit current mode, returning to default. Alias for entering 'default' mode."),
	)

	setContextTool = mcp.NewTool("set_context",
		mcp.WithDescription("Set the active context (what's currently being worked on). Pass empty/null to clear."),
		mcp.WithString("context",
			mcp.Description(`The context description (e.g., "Working on: health insurance"). Omit or pass empty to clear.`),
		),
	)

	getContextTool = mcp.NewTool("get_context",
		mcp.WithDescription("Get the current active context, if any."),
	)

	addAttentionTool = mcp.NewTool("add_attention",
		mcp.WithDescription("Add an item to the attention stack. Items start in 'waiting' status."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Unique identifier for this attention item"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Brief description of what needs attention"),
		),
	)

	updateAttentionTool = mcp.NewTool("update_attention",
		mcp.WithDescription("Update an attention item's status: 'hot' (being worked), 'waiting', or 'handled'."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The attention item ID to update"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description(`New status: "hot", "waiting", or "handled"`),
		),
	)

	listAttentionTool = mcp.NewTool("list_attention",
		mcp.WithDescription("List attention items. Optionally filter by status: 'hot', 'waiting', 'handled', or 'all'."),
		mcp.WithString("status",
			mcp.Description(`Optional status filter: "hot", "waiting", "handled", or "all"`),
		),
	)

	modeHistoryTool = mcp.NewTool("mode_history",
		mcp.WithDescription("Get the history of mode transitions this session."),
	)
)
