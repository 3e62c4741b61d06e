// Package services – role/module permission table
//
// Static mapping from user role to the ERP modules that role may query
// through the pipeline. The table gates only the data-fetching stage;
// FAQ answers and generative answers are available to every role.
package services

// rolePermission describes the module reach of one role.
type rolePermission struct {
	Modules    []string
	DataAccess string
}

var rolePermissions = map[string]rolePermission{
	"admin":    {Modules: []string{"sales", "purchase", "inventory", "production", "finance", "gst", "hr"}, DataAccess: "full"},
	"manager":  {Modules: []string{"sales", "purchase", "inventory", "production", "hr"}, DataAccess: "departmental"},
	"sales":    {Modules: []string{"sales", "inventory"}, DataAccess: "limited"},
	"purchase": {Modules: []string{"purchase", "inventory"}, DataAccess: "limited"},
	"stores":   {Modules: []string{"inventory"}, DataAccess: "limited"},
	"finance":  {Modules: []string{"finance", "gst"}, DataAccess: "limited"},
	"hr":       {Modules: []string{"hr"}, DataAccess: "limited"},
	"employee": {Modules: []string{"general", "hr"}, DataAccess: "basic"},
	"guest":    {Modules: []string{"general"}, DataAccess: "minimal"},
}

// RoleAllowsModule reports whether role may query the given ERP module.
// Unknown roles fall back to guest. The general module is open to everyone.
func RoleAllowsModule(role, module string) bool {
	if module == "general" {
		return true
	}
	perm, ok := rolePermissions[role]
	if !ok {
		perm = rolePermissions["guest"]
	}
	for _, m := range perm.Modules {
		if m == module {
			return true
		}
	}
	return false
}
