package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

// buildMenuTree creates the main menu. Role menus are separate roots and
// are entered only through a successful login.
func buildMenuTree(m *Model) *Menu {
	root := &Menu{
		Title: "Alumni Management System",
		Items: []MenuItem{
			{Label: "Admin Login", Action: m.adminLogin},
			{Label: "Student Login", Action: m.studentLogin},
			{Label: "Alumni Registration", Action: m.registerForm},
			{Label: "Alumni Login", Action: m.alumnusLogin},
			{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}
	linkParents(root, nil)

	m.adminMenu = loadAdminMenu(m)
	m.studentMenu = loadStudentMenu(m)
	m.alumnusMenu = loadAlumnusMenu(m)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadAdminMenu(m *Model) *Menu {
	menu := &Menu{
		Title: "Admin Menu",
		Items: []MenuItem{
			{Label: "Alumni ->", Submenu: &Menu{
				Title: "Admin - Alumni",
				Items: []MenuItem{
					{Label: "Add Alumni", Action: m.addAlumniForm},
					{Label: "View Alumni", Action: m.viewAlumni},
					{Label: "Update Alumni", Action: m.updateAlumniForm},
					{Label: "Delete Alumni", Action: m.deleteAlumniForm},
					{Label: "Search Alumni by Name", Action: m.searchByNameForm},
					{Label: "Search Alumni by Skill", Action: m.searchBySkillForm},
					{Label: "Back"},
				},
			}},
			{Label: "Events ->", Submenu: &Menu{
				Title: "Admin - Events",
				Items: []MenuItem{
					{Label: "Add Event", Action: m.addEventForm},
					{Label: "View Events", Action: m.viewEvents},
					{Label: "Mark Attendance", Action: m.markAttendanceForm},
					{Label: "Send Event Invitations", Action: m.sendInvitationsForm},
					{Label: "Back"},
				},
			}},
			{Label: "Jobs ->", Submenu: &Menu{
				Title: "Admin - Jobs",
				Items: []MenuItem{
					{Label: "Post Job", Action: m.adminPostJobForm},
					{Label: "Search Jobs", Action: m.searchJobsForm},
					{Label: "Back"},
				},
			}},
			{Label: "Reports ->", Submenu: &Menu{
				Title: "Admin - Reports",
				Items: []MenuItem{
					{Label: "Alumni Report", Action: m.alumniReport},
					{Label: "Event Participation Report", Action: m.participationReport},
					{Label: "Back"},
				},
			}},
			{Label: "Data ->", Submenu: &Menu{
				Title: "Admin - Data",
				Items: []MenuItem{
					{Label: "Batch Import", Action: m.importForm},
					{Label: "Batch Export", Action: m.exportForm},
					{Label: "Reset All Data", Action: m.resetForm},
					{Label: "Back"},
				},
			}},
			{Label: "Email Configuration", Action: m.emailConfigForm},
			{Label: "Logout", Action: m.logout},
		},
	}
	linkParents(menu, nil)
	return menu
}

func loadStudentMenu(m *Model) *Menu {
	menu := &Menu{
		Title: "Student Menu",
		Items: []MenuItem{
			{Label: "View Alumni", Action: m.viewAlumni},
			{Label: "Search Alumni by Name", Action: m.searchByNameForm},
			{Label: "Search Alumni by Skill", Action: m.searchBySkillForm},
			{Label: "View Job Postings", Action: m.viewJobs},
			{Label: "View Events", Action: m.viewEvents},
			{Label: "View Achievements", Action: m.viewAchievements},
			{Label: "Logout", Action: m.logout},
		},
	}
	linkParents(menu, nil)
	return menu
}

func loadAlumnusMenu(m *Model) *Menu {
	menu := &Menu{
		Title: "Alumni Menu",
		Items: []MenuItem{
			{Label: "Update Profile", Action: m.updateProfileForm},
			{Label: "Skills ->", Submenu: &Menu{
				Title: "Alumni - Skills",
				Items: []MenuItem{
					{Label: "View My Skills", Action: m.viewMySkills},
					{Label: "Add Skill", Action: m.addSkillForm},
					{Label: "Remove Skill", Action: m.removeSkillForm},
					{Label: "Back"},
				},
			}},
			{Label: "Jobs ->", Submenu: &Menu{
				Title: "Alumni - Jobs",
				Items: []MenuItem{
					{Label: "Post Job", Action: m.postJobForm},
					{Label: "View Job Postings", Action: m.viewJobs},
					{Label: "Add Job History", Action: m.addJobHistoryForm},
					{Label: "View Job History", Action: m.viewJobHistory},
					{Label: "Back"},
				},
			}},
			{Label: "RSVP Event", Action: m.rsvpForm},
			{Label: "Messages ->", Submenu: &Menu{
				Title: "Alumni - Messages",
				Items: []MenuItem{
					{Label: "Send Message", Action: m.sendMessageForm},
					{Label: "Inbox", Action: m.viewInbox},
					{Label: "Connect", Action: m.connectForm},
					{Label: "Back"},
				},
			}},
			{Label: "Add Achievement", Action: m.addAchievementForm},
			{Label: "Logout", Action: m.logout},
		},
	}
	linkParents(menu, nil)
	return menu
}
