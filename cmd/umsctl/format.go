package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/doodlesbykumbi/ums-in-go/pkg/membership"
	"github.com/doodlesbykumbi/ums-in-go/pkg/model"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func validOutput(output string) error {
	if output != outputText && output != outputJSON {
		return fmt.Errorf("unknown output format %q (expected text or json)", output)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func formatUserList(w io.Writer, users []model.User) {
	fmt.Fprintf(w, "%-8s %-24s %-8s %-16s %s\n", "ID", "NAME", "GENDER", "ROLE", "GROUPS")
	for _, u := range users {
		fmt.Fprintf(w, "%-8d %-24s %-8s %-16s %d\n",
			u.ID, u.Name, u.Gender.Label(), u.Role, membership.GroupCount(u))
	}
}

func formatUser(w io.Writer, u model.User, groups []model.Group) {
	names := groupNames(groups)
	labels := make([]string, 0, len(u.GroupIDs))
	for _, id := range u.GroupIDs {
		if name, ok := names[id]; ok {
			labels = append(labels, fmt.Sprintf("%s (%d)", name, id))
		} else {
			labels = append(labels, strconv.FormatInt(id, 10))
		}
	}

	fmt.Fprintf(w, "%-8s %d\n", "ID:", u.ID)
	fmt.Fprintf(w, "%-8s %s\n", "Name:", u.Name)
	fmt.Fprintf(w, "%-8s %s\n", "Gender:", u.Gender.Label())
	fmt.Fprintf(w, "%-8s %s\n", "Role:", u.Role)
	fmt.Fprintf(w, "%-8s %s\n", "Groups:", strings.Join(labels, ", "))
}

func formatGroupList(w io.Writer, groups []model.Group, users []model.User) {
	counts := membership.MemberCounts(users, groups)
	fmt.Fprintf(w, "%-8s %-24s %-8s %s\n", "ID", "NAME", "MEMBERS", "DESCRIPTION")
	for _, g := range groups {
		fmt.Fprintf(w, "%-8d %-24s %-8d %s\n", g.ID, g.Name, counts[g.ID], firstLine(g.Description))
	}
}

func formatGroup(w io.Writer, g model.Group, users []model.User) {
	members := membership.Members(users, g.ID)
	names := make([]string, 0, len(members))
	for _, u := range members {
		names = append(names, u.Name)
	}

	fmt.Fprintf(w, "%-13s %d\n", "ID:", g.ID)
	fmt.Fprintf(w, "%-13s %s\n", "Name:", g.Name)
	fmt.Fprintf(w, "%-13s %d\n", "Members:", len(members))
	fmt.Fprintf(w, "%-13s %s\n", "Member names:", strings.Join(names, ", "))
	fmt.Fprintln(w, "Description:")
	fmt.Fprintln(w, g.Description)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
