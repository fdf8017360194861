package projectform

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"c4sg/internal/models"

	"github.com/go-playground/validator/v10"
)

// Form holds the editable fields of a project. Every field is required.
type Form struct {
	ProjectName        string `form:"projectName" validate:"required"`
	OrganizationName   string `form:"organizationName" validate:"required"`
	ProjectDescription string `form:"projectDescription" validate:"required"`
	RemoteFlag         string `form:"remoteFlag" validate:"required"`
	Address1           string `form:"address1" validate:"required"`
	Address2           string `form:"address2" validate:"required"`
	City               string `form:"city" validate:"required"`
	State              string `form:"state" validate:"required"`
	Zip                string `form:"zip" validate:"required"`
	Country            string `form:"country" validate:"required"`
}

// Fill returns a form holding the current values of project
func Fill(project *models.Project) Form {
	f := Form{
		ProjectName:        project.Name,
		ProjectDescription: project.Description,
		RemoteFlag:         project.RemoteFlag,
		Address1:           project.Address1,
		Address2:           project.Address2,
		City:               project.City,
		State:              project.State,
		Zip:                project.Zip,
		Country:            project.Country,
	}
	if project.Organization != nil {
		f.OrganizationName = project.Organization.Name
	}
	return f
}

// apply copies the form values onto project
func (f Form) apply(project *models.Project) {
	project.Name = f.ProjectName
	project.Description = f.ProjectDescription
	project.RemoteFlag = f.RemoteFlag
	project.Address1 = f.Address1
	project.Address2 = f.Address2
	project.City = f.City
	project.State = f.State
	project.Zip = f.Zip
	project.Country = f.Country

	if project.Organization == nil {
		project.Organization = &models.Organization{ID: project.OrganizationID}
	}
	project.Organization.Name = f.OrganizationName
}

// Fields lists the form field names in display order
var Fields = []string{
	"projectName", "organizationName", "projectDescription", "remoteFlag",
	"address1", "address2", "city", "state", "zip", "country",
}

// Get returns the value of the named field
func (f *Form) Get(field string) (string, bool) {
	p, ok := f.field(field)
	if !ok {
		return "", false
	}
	return *p, true
}

// Set changes the value of the named field
func (f *Form) Set(field, value string) error {
	p, ok := f.field(field)
	if !ok {
		return fmt.Errorf("unknown form field %q", field)
	}
	*p = value
	return nil
}

func (f *Form) field(name string) (*string, bool) {
	switch name {
	case "projectName":
		return &f.ProjectName, true
	case "organizationName":
		return &f.OrganizationName, true
	case "projectDescription":
		return &f.ProjectDescription, true
	case "remoteFlag":
		return &f.RemoteFlag, true
	case "address1":
		return &f.Address1, true
	case "address2":
		return &f.Address2, true
	case "city":
		return &f.City, true
	case "state":
		return &f.State, true
	case "zip":
		return &f.Zip, true
	case "country":
		return &f.Country, true
	}
	return nil, false
}

// ValidationError lists the fields that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validate checks f and converts validator errors into a ValidationError
func validate(v *validator.Validate, f Form) error {
	trimmed := f
	for _, name := range Fields {
		p, _ := trimmed.field(name)
		*p = strings.TrimSpace(*p)
	}

	err := v.Struct(trimmed)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("error validating form: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, fe.Field())
	}
	return out
}
