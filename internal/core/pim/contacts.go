package pim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

const noContacts = "No contacts found"

// Contacts searches with khard and writes new cards straight into the
// vdirsyncer address book, since `khard new` is interactive.
type Contacts struct {
	khard string
	dir   string
	exec  executil.Executor
}

// NewContacts creates a Contacts.
func NewContacts(cfg config.PIMConfig, exec executil.Executor) *Contacts {
	return &Contacts{khard: cfg.Khard, dir: cfg.ContactsDir, exec: exec}
}

// Search finds contacts by name, email or phone fragment.
func (c *Contacts) Search(ctx context.Context, query string) (string, error) {
	query, err := required("query", query)
	if err != nil {
		return "", err
	}

	out, err := c.exec.Run(ctx, c.khard, "list", query)
	if err != nil {
		// khard exits non-zero when nothing matches.
		if strings.Contains(err.Error(), noContacts) {
			return "No contacts found matching: " + query, nil
		}
		return "", fmt.Errorf("search contacts: %w", err)
	}

	text := string(out)
	if strings.TrimSpace(text) == "" || strings.Contains(text, noContacts) {
		return "No contacts found matching: " + query, nil
	}
	return fmt.Sprintf("Contacts matching '%s':\n\n%s", query, text), nil
}

// Get shows the full card of one contact.
func (c *Contacts) Get(ctx context.Context, name string) (string, error) {
	name, err := required("name", name)
	if err != nil {
		return "", err
	}

	out, err := c.exec.Run(ctx, c.khard, "show", name)
	if err != nil {
		return "", fmt.Errorf("get contact: %w", err)
	}
	if strings.TrimSpace(string(out)) == "" {
		return "No contact found with name: " + name, nil
	}
	return string(out), nil
}

// ContactInput describes a contact to create.
type ContactInput struct {
	Name         string
	Email        string
	Phone        string
	Organization string
}

// Create writes a vCard 3.0 file named after a fresh UUID into the address
// book directory, creating the directory when needed.
func (c *Contacts) Create(_ context.Context, in ContactInput) (string, error) {
	var err error
	if in.Name, err = required("name", in.Name); err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create address book: %w", err)
	}

	path := filepath.Join(c.dir, id+".vcf")
	if err := os.WriteFile(path, []byte(VCard(id, in)), 0o644); err != nil {
		return "", fmt.Errorf("write contact: %w", err)
	}

	return fmt.Sprintf(
		"Contact created: %s\nEmail: %s\nPhone: %s\nOrganization: %s\n\nSaved to: %s\nRun 'vdirsyncer sync' to upload it.",
		in.Name, orNone(in.Email), orNone(in.Phone), orNone(in.Organization), path,
	), nil
}

// VCard renders in as a vCard 3.0 card with the given UID. Lines end in CRLF.
func VCard(uid string, in ContactInput) string {
	var b strings.Builder
	line := func(prop, value string) {
		b.WriteString(prop)
		b.WriteString(":")
		b.WriteString(value)
		b.WriteString("\r\n")
	}

	family, given := splitName(in.Name)

	line("BEGIN", "VCARD")
	line("VERSION", "3.0")
	line("UID", uid)
	line("FN", escapeVCard(in.Name))
	line("N", escapeVCard(family)+";"+escapeVCard(given)+";;;")
	if in.Email != "" {
		line("EMAIL;TYPE=INTERNET", escapeVCard(in.Email))
	}
	if in.Phone != "" {
		line("TEL", escapeVCard(in.Phone))
	}
	if in.Organization != "" {
		line("ORG", escapeVCard(in.Organization))
	}
	line("END", "VCARD")
	return b.String()
}

// splitName treats the last word as the family name.
func splitName(name string) (family, given string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[len(fields)-1], strings.Join(fields[:len(fields)-1], " ")
	}
}

var vcardEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", `\,`,
	";", `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escapeVCard(s string) string {
	return vcardEscaper.Replace(s)
}
