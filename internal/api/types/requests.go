package types

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Messages maps failed fields to the client-facing validation messages.
func (RegisterRequest) Messages() map[string]string {
	return map[string]string{
		"Name":     "Name is required",
		"Email":    "Please include a valid email",
		"Password": "Please enter a password of 6 or more characters",
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (LoginRequest) Messages() map[string]string {
	return map[string]string{
		"Email":    "Please include a valid email",
		"Password": "Password is required",
	}
}

type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"required"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

func (UpsertProfileRequest) Messages() map[string]string {
	return map[string]string{
		"Status": "Status is required",
		"Skills": "Skills is required",
	}
}

type AddExperienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (AddExperienceRequest) Messages() map[string]string {
	return map[string]string{
		"Title":   "Title is required",
		"Company": "Company is required",
		"From":    "From Date is required",
	}
}

type AddEducationRequest struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (AddEducationRequest) Messages() map[string]string {
	return map[string]string{
		"School":       "School is required",
		"Degree":       "Degree is required",
		"FieldOfStudy": "Field of Study is required",
		"From":         "From Date is required",
	}
}
