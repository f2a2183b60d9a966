package pimserver

import "github.com/mark3labs/mcp-go/mcp"

var (
	listEventsTool = mcp.NewTool("list_events",
		mcp.WithDescription("List calendar events for a date range. Returns events from all synced calendars."),
		mcp.WithString("start_date",
			mcp.Description("Start date in YYYY-MM-DD format (default: today)"),
		),
		mcp.WithNumber("days",
			mcp.Description("Number of days to show (default: 7)"),
		),
	)

	createEventTool = mcp.NewTool("create_event",
		mcp.WithDescription("Create a new calendar event on your personal calendar."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
		mcp.WithString("start_time", mcp.Description("Start time in HH:MM format (24-hour). Omit for an all-day event.")),
		mcp.WithString("end_time", mcp.Description("End time in HH:MM format (24-hour). Omit for a one hour event.")),
		mcp.WithString("location", mcp.Description("Event location")),
		mcp.WithString("description", mcp.Description("Event description")),
	)

	searchEmailsTool = mcp.NewTool("search_emails",
		mcp.WithDescription("Search emails using notmuch query syntax. Supports: from:, to:, subject:, date:, tag:, and free text."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query using notmuch syntax (e.g., 'from:john subject:meeting date:thisweek')"),
		),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default: 20)")),
	)

	readEmailTool = mcp.NewTool("read_email",
		mcp.WithDescription("Read the full content of an email thread."),
		mcp.WithString("thread_id",
			mcp.Required(),
			mcp.Description("Thread ID from search results (e.g., 'thread:00000000000012ab')"),
		),
	)

	sendEmailTool = mcp.NewTool("send_email",
		mcp.WithDescription("Send an email. Requires explicit confirmation for safety."),
		mcp.WithString("to", mcp.Required(), mcp.Description("Recipient email address")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Email subject")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Email body text")),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true to actually send. Without it a preview is returned."),
		),
	)

	findContactTool = mcp.NewTool("find_contact",
		mcp.WithDescription("Search contacts by name, email, or phone number."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query (name, email, or phone fragment)")),
	)

	getContactTool = mcp.NewTool("get_contact",
		mcp.WithDescription("Get full details of a specific contact."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Contact name (as shown in search results)")),
	)

	createContactTool = mcp.NewTool("create_contact",
		mcp.WithDescription("Create a new contact in the synced address book."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name")),
		mcp.WithString("email", mcp.Description("Email address")),
		mcp.WithString("phone", mcp.Description("Phone number")),
		mcp.WithString("organization", mcp.Description("Organization or company")),
	)
)
