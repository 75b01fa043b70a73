package contact

import "time"

// Message is a contact-form submission stored in contact_messages.
type Message struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Company   string    `json:"company,omitempty" bson:"company,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty" bson:"subject,omitempty"`
	Message   string    `json:"message" bson:"message"`
	Emailed   bool      `json:"emailed" bson:"emailed"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Request is the JSON body of POST /api/contact.
type Request struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email,max=320"`
	Company string `json:"company" binding:"max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Subject string `json:"subject" binding:"max=300"`
	Message string `json:"message" binding:"required,max=5000"`
}
