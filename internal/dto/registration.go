package dto

// RegisterStudentRequest captures the student sign-up form. Field names
// match the legacy form inputs.
type RegisterStudentRequest struct {
	ID         string `form:"student_id" json:"student_id" validate:"required"`
	FullName   string `form:"student_name" json:"student_name" validate:"required"`
	Email      string `form:"email" json:"email" validate:"required,email"`
	Phone      string `form:"phone_number" json:"phone_number"`
	Password   string `form:"password" json:"password" validate:"required"`
	Gender     string `form:"student_gender" json:"student_gender"`
	Department string `form:"student_dept" json:"student_dept"`
}

// RegisterTeacherRequest captures the teacher sign-up form. Code must
// match the environment-supplied registration code.
type RegisterTeacherRequest struct {
	ID         string `form:"teacher_id" json:"teacher_id" validate:"required"`
	FullName   string `form:"teacher_name" json:"teacher_name" validate:"required"`
	Email      string `form:"email" json:"email" validate:"required,email"`
	Phone      string `form:"phone_number" json:"phone_number"`
	Password   string `form:"password" json:"password" validate:"required"`
	Gender     string `form:"teacher_gender" json:"teacher_gender"`
	Department string `form:"teacher_dept" json:"teacher_dept"`
	Code       string `form:"teacher_code" json:"teacher_code" validate:"required"`
}

// RegistrationFormIntent is served on GET so clients can render the
// sign-up form: the public identity config plus the field listing.
type RegistrationFormIntent struct {
	Role           string               `json:"role"`
	RequiredFields []string             `json:"required_fields"`
	OptionalFields []string             `json:"optional_fields"`
	Firebase       FirebaseClientConfig `json:"firebase"`
}
